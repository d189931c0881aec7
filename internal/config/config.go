package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Qdrant    QdrantConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Assistant AssistantConfig `toml:"assistant"`
	Recorder  RecorderConfig  `toml:"recorder"`
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadPath    string
	MaxAudioSize  int64
	MaxResumeSize int64
}

// multipartOverhead covers boundaries, part headers and form fields around
// an uploaded file.
const multipartOverhead = 1 << 20

// BodyLimit is the request size the HTTP server accepts. Per-file limits
// are enforced by the handlers.
func (s StorageConfig) BodyLimit() int {
	largest := s.MaxAudioSize
	if s.MaxResumeSize > largest {
		largest = s.MaxResumeSize
	}
	return int(largest) + multipartOverhead
}

type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
}

// AssistantConfig holds the prompt-facing defaults.
type AssistantConfig struct {
	Models                []string `toml:"models"`
	DefaultModel          string   `toml:"default_model"`
	DefaultPosition       string   `toml:"default_position"`
	TranscriptionProvider string   `toml:"transcription_provider"`
	TranscriptionModel    string   `toml:"transcription_model"`
}

// RecorderConfig drives the local microphone capture.
type RecorderConfig struct {
	SampleRate int    `toml:"sample_rate"`
	ChunkMs    int    `toml:"chunk_ms"`
	Device     string `toml:"device"`
}

var DefaultModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-4-turbo", "gpt-3.5-turbo", "gemini-2.5-flash"}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "interview_copilot.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_copilot"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_questions"),
		},
		Storage: StorageConfig{
			UploadPath:    getEnv("UPLOAD_PATH", "./uploads"),
			MaxAudioSize:  getEnvAsInt64("MAX_AUDIO_SIZE", 26214400),
			MaxResumeSize: getEnvAsInt64("MAX_RESUME_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 2),
			PollInterval: getEnvAsDuration("WORKER_POLL_INTERVAL", "30s"),
		},
		Assistant: AssistantConfig{
			Models:                getEnvAsList("MODELS", DefaultModels),
			DefaultModel:          getEnv("DEFAULT_MODEL", "gpt-4o-mini"),
			DefaultPosition:       getEnv("DEFAULT_POSITION", "Python Developer"),
			TranscriptionProvider: getEnv("TRANSCRIPTION_PROVIDER", "openai"),
			TranscriptionModel:    getEnv("TRANSCRIPTION_MODEL", ""),
		},
		Recorder: RecorderConfig{
			SampleRate: getEnvAsInt("RECORDER_SAMPLE_RATE", 16000),
			ChunkMs:    getEnvAsInt("RECORDER_CHUNK_MS", 100),
			Device:     getEnv("RECORDER_DEVICE", ""),
		},
	}

	if path := os.Getenv("INTERVIEW_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			logrus.Warnf("⚠️  Ignoring config file %s: %v", path, err)
		}
	}

	return cfg
}

// ApplyFile overlays the [assistant] and [recorder] tables of a TOML file.
// Keys absent from the file keep their current values.
func (c *Config) ApplyFile(path string) error {
	overlay := struct {
		Assistant AssistantConfig `toml:"assistant"`
		Recorder  RecorderConfig  `toml:"recorder"`
	}{
		Assistant: c.Assistant,
		Recorder:  c.Recorder,
	}

	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	c.Assistant = overlay.Assistant
	c.Recorder = overlay.Recorder
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// HistoryEnabled reports whether question history can be indexed and searched.
func (c *Config) HistoryEnabled() bool {
	return c.Qdrant.URL != "" && c.Gemini.APIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return values
}
