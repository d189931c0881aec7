package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/services"
)

var (
	ErrNoCaptureDevice = errors.New("no audio capture tool available (tried pw-record, arecord)")
	ErrCaptureFailed   = errors.New("audio capture failed")
	ErrAlreadyRunning  = errors.New("recorder is already running")
)

// Recorder captures microphone audio as PCM s16le mono by piping from
// pw-record or arecord, buffering chunks until Stop.
type Recorder struct {
	sampleRate int
	chunkBytes int
	device     string

	lookPath func(string) (string, error)

	mu      sync.Mutex
	queue   *Queue[[]byte]
	cmd     *exec.Cmd
	stderr  *bytes.Buffer
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewRecorder(cfg config.RecorderConfig) *Recorder {
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	chunkMs := cfg.ChunkMs
	if chunkMs <= 0 {
		chunkMs = 100
	}

	// 2 bytes per sample, mono
	chunkSamples := sampleRate * chunkMs / 1000
	return &Recorder{
		sampleRate: sampleRate,
		chunkBytes: chunkSamples * 2,
		device:     cfg.Device,
		lookPath:   exec.LookPath,
	}
}

// Start launches the capture subprocess and begins buffering audio.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()

	if err := r.launch(ctx); err != nil {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *Recorder) launch(ctx context.Context) error {
	args, err := r.buildArgs()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start recorder: %w", err)
	}

	r.mu.Lock()
	r.cmd = cmd
	r.stderr = stderr
	r.cancel = cancel
	r.mu.Unlock()

	r.startReader(stdout)

	logrus.Infof("🎙️  Recording started (%s, %d Hz, chunk=%d bytes)", args[0], r.sampleRate, r.chunkBytes)
	return nil
}

// startReader runs the polling loop that moves chunks from src into the queue.
func (r *Recorder) startReader(src io.Reader) {
	r.mu.Lock()
	r.queue = NewQueue[[]byte]()
	r.done = make(chan struct{})
	r.running = true
	queue, done := r.queue, r.done
	r.mu.Unlock()

	go func() {
		defer close(done)
		buf := make([]byte, r.chunkBytes)
		for {
			n, err := io.ReadFull(src, buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				queue.Enqueue(chunk)
			}
			if err != nil {
				if err != io.EOF && err != io.ErrUnexpectedEOF {
					logrus.Debugf("recorder read: %v", err)
				}
				return
			}
		}
	}()
}

// Stop ends the capture and returns everything recorded as a WAV clip.
func (r *Recorder) Stop() (*services.AudioClip, error) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil, fmt.Errorf("recorder is not running")
	}
	if r.done == nil {
		// Start has claimed the recorder but not launched the tool yet.
		r.mu.Unlock()
		return nil, fmt.Errorf("recorder is still starting")
	}
	r.running = false
	cmd, stderr, cancel, done, queue := r.cmd, r.stderr, r.cancel, r.done, r.queue
	r.cmd, r.stderr, r.cancel, r.done = nil, nil, nil, nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done

	var captureErr error
	if cmd != nil {
		captureErr = exitError(cmd.Wait(), stderr)
	}

	pcm := Concat(queue.Drain())
	if len(pcm) == 0 {
		if captureErr != nil {
			return nil, captureErr
		}
		return nil, services.ErrEmptyAudio
	}
	if captureErr != nil {
		logrus.Warnf("⚠️  Recorder ended early, keeping %d bytes: %v", len(pcm), captureErr)
	}

	logrus.Infof("⏹️  Recording stopped (%d bytes, %.1fs)", len(pcm), float64(len(pcm))/float64(r.sampleRate*2))

	return &services.AudioClip{
		Data:   services.EncodeWAV(pcm, r.sampleRate, 1, 16),
		Format: services.FormatWAV,
	}, nil
}

// exitError reports a capture tool that exited on its own with a failure
// status. A kill from Stop's cancel (exit code -1) is the normal path.
func exitError(waitErr error, stderr *bytes.Buffer) error {
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) || exitErr.ExitCode() < 0 {
		return nil
	}

	msg := exitErr.Error()
	if stderr != nil {
		if out := strings.TrimSpace(stderr.String()); out != "" {
			msg = out
		}
	}
	return fmt.Errorf("%w: %s", ErrCaptureFailed, msg)
}

func (r *Recorder) buildArgs() ([]string, error) {
	// Prefer pw-record (PipeWire), fall back to arecord (ALSA)
	if _, err := r.lookPath("pw-record"); err == nil {
		args := []string{
			"pw-record",
			"--format=s16",
			fmt.Sprintf("--rate=%d", r.sampleRate),
			"--channels=1",
		}
		if r.device != "" {
			args = append(args, "--target="+r.device)
		}
		return append(args, "-"), nil
	}

	if _, err := r.lookPath("arecord"); err == nil {
		args := []string{
			"arecord",
			"-f", "S16_LE",
			"-r", fmt.Sprintf("%d", r.sampleRate),
			"-c", "1",
			"-t", "raw",
			"-q",
		}
		if r.device != "" {
			args = append(args, "-D", r.device)
		}
		return append(args, "-"), nil
	}

	return nil, ErrNoCaptureDevice
}
