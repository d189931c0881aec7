package capture

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/services"
)

func TestRecorder_StopWrapsBufferedPCM(t *testing.T) {
	r := NewRecorder(config.RecorderConfig{SampleRate: 8000, ChunkMs: 10})

	pcm := make([]byte, 1000) // not a multiple of the 160-byte chunk
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	r.startReader(bytes.NewReader(pcm))
	clip, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if clip.Format != services.FormatWAV {
		t.Errorf("Format = %q, want wav", clip.Format)
	}
	if len(clip.Data) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(clip.Data), 44+len(pcm))
	}
	if !bytes.Equal(clip.Data[44:], pcm) {
		t.Error("PCM payload was reordered or truncated")
	}
	if rate := binary.LittleEndian.Uint32(clip.Data[24:28]); rate != 8000 {
		t.Errorf("sample rate = %d, want 8000", rate)
	}
}

func TestRecorder_StopWithoutAudio(t *testing.T) {
	r := NewRecorder(config.RecorderConfig{})

	r.startReader(bytes.NewReader(nil))
	if _, err := r.Stop(); !errors.Is(err, services.ErrEmptyAudio) {
		t.Fatalf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestRecorder_StopWhenNotRunning(t *testing.T) {
	r := NewRecorder(config.RecorderConfig{})
	if _, err := r.Stop(); err == nil {
		t.Fatal("expected error when stopping an idle recorder")
	}
}

func TestRecorder_BuildArgs(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]bool
		device    string
		want      []string
		wantErr   error
	}{
		{
			name:      "pipewire preferred",
			available: map[string]bool{"pw-record": true, "arecord": true},
			want:      []string{"pw-record", "--format=s16", "--rate=16000", "--channels=1", "-"},
		},
		{
			name:      "alsa fallback with device",
			available: map[string]bool{"arecord": true},
			device:    "hw:1",
			want:      []string{"arecord", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw", "-q", "-D", "hw:1", "-"},
		},
		{
			name:      "no tool",
			available: map[string]bool{},
			wantErr:   ErrNoCaptureDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(config.RecorderConfig{Device: tt.device})
			r.lookPath = func(name string) (string, error) {
				if tt.available[name] {
					return "/usr/bin/" + name, nil
				}
				return "", exec.ErrNotFound
			}

			got, err := r.buildArgs()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// fakeCaptureTool puts an executable pw-record script first on PATH.
func fakeCaptureTool(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "pw-record")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("write fake recorder: %v", err)
	}
	t.Setenv("PATH", dir)
}

func TestRecorder_StopReportsToolFailure(t *testing.T) {
	fakeCaptureTool(t, "echo 'permission denied' >&2\nexit 1\n")

	r := NewRecorder(config.RecorderConfig{})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// The reader finishes once the tool has exited and closed stdout.
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	<-done

	_, err := r.Stop()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("error %q does not carry the tool's stderr", err)
	}
}

func TestRecorder_StopKeepsAudioFromCleanExit(t *testing.T) {
	fakeCaptureTool(t, "printf 'abcd'\n")

	r := NewRecorder(config.RecorderConfig{})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	<-done

	clip, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !bytes.Equal(clip.Data[44:], []byte("abcd")) {
		t.Errorf("payload = %q, want abcd", clip.Data[44:])
	}
}

func TestRecorder_StartWhileRunning(t *testing.T) {
	r := NewRecorder(config.RecorderConfig{})
	r.lookPath = func(string) (string, error) {
		t.Fatal("a running recorder must not look up a capture tool")
		return "", exec.ErrNotFound
	}

	pr, pw := io.Pipe()
	r.startReader(pr)

	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	pw.Write([]byte{1, 0})
	pw.Close()
	if _, err := r.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestRecorder_StartFailureAllowsRetry(t *testing.T) {
	r := NewRecorder(config.RecorderConfig{})
	r.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	for i := 0; i < 2; i++ {
		if err := r.Start(context.Background()); !errors.Is(err, ErrNoCaptureDevice) {
			t.Fatalf("attempt %d: expected ErrNoCaptureDevice, got %v", i+1, err)
		}
	}
}
