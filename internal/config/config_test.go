package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "DB_DRIVER", "MODELS", "DEFAULT_MODEL", "DEFAULT_POSITION", "MAX_AUDIO_SIZE", "MAX_RESUME_SIZE", "INTERVIEW_CONFIG", "QDRANT_URL", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Storage.MaxAudioSize != 25*1024*1024 {
		t.Errorf("max audio size = %d", cfg.Storage.MaxAudioSize)
	}
	if cfg.Storage.MaxResumeSize != 10*1024*1024 {
		t.Errorf("max resume size = %d", cfg.Storage.MaxResumeSize)
	}
	if cfg.Worker.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %v", cfg.Worker.PollInterval)
	}
	if diff := cmp.Diff(DefaultModels, cfg.Assistant.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
	if cfg.Assistant.DefaultModel != "gpt-4o-mini" || cfg.Assistant.DefaultPosition != "Python Developer" {
		t.Errorf("assistant defaults = %+v", cfg.Assistant)
	}
	if cfg.HistoryEnabled() {
		t.Error("history should be disabled without Qdrant and Gemini")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTERVIEW_CONFIG", "")
	t.Setenv("PORT", "8080")
	t.Setenv("MODELS", " gpt-4o , ,gemini-2.5-flash")
	t.Setenv("DEFAULT_POSITION", "SRE")
	t.Setenv("WORKER_POLL_INTERVAL", "5s")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")
	t.Setenv("QDRANT_URL", "http://localhost:6334")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if diff := cmp.Diff([]string{"gpt-4o", "gemini-2.5-flash"}, cfg.Assistant.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
	if cfg.Assistant.DefaultPosition != "SRE" {
		t.Errorf("position = %q", cfg.Assistant.DefaultPosition)
	}
	if cfg.Worker.PollInterval != 5*time.Second {
		t.Errorf("poll interval = %v", cfg.Worker.PollInterval)
	}
	if cfg.Worker.Concurrency != 2 {
		t.Errorf("concurrency = %d, want fallback 2", cfg.Worker.Concurrency)
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should be enabled")
	}
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copilot.toml")
	content := `
[assistant]
default_model = "gpt-4o"
models = ["gpt-4o", "gpt-4o-mini"]

[recorder]
device = "hw:1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		Assistant: AssistantConfig{DefaultModel: "gpt-4o-mini", DefaultPosition: "Python Developer"},
		Recorder:  RecorderConfig{SampleRate: 16000, ChunkMs: 100},
	}
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	wantAssistant := AssistantConfig{
		Models:          []string{"gpt-4o", "gpt-4o-mini"},
		DefaultModel:    "gpt-4o",
		DefaultPosition: "Python Developer",
	}
	if diff := cmp.Diff(wantAssistant, cfg.Assistant); diff != "" {
		t.Errorf("assistant mismatch (-want +got):\n%s", diff)
	}
	wantRecorder := RecorderConfig{SampleRate: 16000, ChunkMs: 100, Device: "hw:1"}
	if diff := cmp.Diff(wantRecorder, cfg.Recorder); diff != "" {
		t.Errorf("recorder mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[assistant\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Assistant: AssistantConfig{DefaultModel: "gpt-4o-mini"}}
	if err := cfg.ApplyFile(path); err == nil {
		t.Fatal("expected a decode error")
	}
	if cfg.Assistant.DefaultModel != "gpt-4o-mini" {
		t.Errorf("config changed on error: %+v", cfg.Assistant)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n"}}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestStorageConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		cfg  StorageConfig
		want int
	}{
		{name: "audio largest", cfg: StorageConfig{MaxAudioSize: 4096, MaxResumeSize: 1024}, want: 4096 + 1<<20},
		{name: "resume largest", cfg: StorageConfig{MaxAudioSize: 1024, MaxResumeSize: 8192}, want: 8192 + 1<<20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BodyLimit(); got != tt.want {
				t.Errorf("BodyLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}
