package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alfredoptarigan/interview-copilot/internal/app"
	"alfredoptarigan/interview-copilot/internal/capture"
	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

var (
	modelFlag      string
	positionFlag   string
	jobPostingFlag string
	resumeFlag     string
	durationFlag   time.Duration
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "interview-copilot",
	Short: "Answer interview questions from recorded audio",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a question from the microphone",
	Long:  "Records until Enter is pressed, --duration elapses or the process is interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		recorder := capture.NewRecorder(cfg.Recorder)
		if err := recorder.Start(ctx); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "🎙️  Recording... press Enter to stop.")
		waitForStop(ctx, durationFlag)

		clip, err := recorder.Stop()
		if err != nil {
			return err
		}

		return answerClip(context.Background(), cmd, cfg, clip)
	},
}

var fileCmd = &cobra.Command{
	Use:   "file PATH",
	Short: "Answer the question in an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read audio file: %w", err)
		}

		clip, err := services.NewAudioClip(data)
		if err != nil {
			return err
		}

		return answerClip(cmd.Context(), cmd, cfg, clip)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "chat model (default from config)")
	rootCmd.PersistentFlags().StringVarP(&positionFlag, "position", "p", "", "position applied for (default from config)")
	rootCmd.PersistentFlags().StringVar(&jobPostingFlag, "job-posting", "", "path to a text file with the job posting")
	rootCmd.PersistentFlags().StringVar(&resumeFlag, "resume", "", "path to a resume (.pdf or text)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	recordCmd.Flags().DurationVarP(&durationFlag, "duration", "d", 0, "stop recording after this long")

	rootCmd.AddCommand(recordCmd, fileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// waitForStop blocks until Enter, the optional duration or ctx cancellation.
func waitForStop(ctx context.Context, d time.Duration) {
	enter := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(enter)
	}()

	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-enter:
	case <-timeout:
	case <-ctx.Done():
	}
}

func answerClip(ctx context.Context, cmd *cobra.Command, cfg *config.Config, clip *services.AudioClip) error {
	components, err := app.Build(cfg)
	if err != nil {
		return err
	}

	jobPosting, err := readOptionalText(jobPostingFlag, nil)
	if err != nil {
		return err
	}
	resume, err := readOptionalText(resumeFlag, components.PDFParser)
	if err != nil {
		return err
	}

	session, err := components.Interview.TranscribeClip(ctx, "", clip)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n❓ %s\n", session.Transcript)

	resp, err := components.Interview.GenerateAnswers(ctx, &models.GenerateAnswerRequest{
		SessionID:  session.ID.String(),
		Transcript: session.Transcript,
		Model:      modelFlag,
		Position:   positionFlag,
		JobPosting: jobPosting,
		Resume:     resume,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n⚡ Short answer:\n%s\n", resp.ShortAnswer)
	fmt.Fprintf(out, "\n📝 Long answer:\n%s\n", resp.LongAnswer)
	return nil
}

// readOptionalText loads path as plain text, or through the PDF parser for
// .pdf files when one is given. An empty path yields an empty string.
func readOptionalText(path string, pdfParser services.PDFParserService) (string, error) {
	if path == "" {
		return "", nil
	}

	if pdfParser != nil && strings.EqualFold(filepath.Ext(path), ".pdf") {
		content, err := pdfParser.ExtractText(path)
		if err != nil {
			return "", err
		}
		return content.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
