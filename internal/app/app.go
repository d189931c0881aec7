package app

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/repositories"
	"alfredoptarigan/interview-copilot/internal/services"
)

// Components is everything the server and the CLI share.
type Components struct {
	DB          *gorm.DB
	SessionRepo repositories.SessionRepository
	Storage     services.StorageService
	PDFParser   services.PDFParserService
	Interview   services.InterviewService

	// History and Worker are nil when question history is disabled.
	History services.HistoryService
	Worker  services.Worker
}

// Build wires the database, providers and services from cfg. The worker is
// created but not started.
func Build(cfg *config.Config) (*Components, error) {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sessionRepo := repositories.NewSessionRepository(db)
	logrus.Info("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	var openaiService services.OpenAIService
	if cfg.OpenAI.APIKey != "" {
		openaiService = services.NewOpenAIService(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.BaseURL,
			cfg.Assistant.TranscriptionModel,
			storageService,
		)
		logrus.Info("✅ OpenAI initialized successfully")
	}

	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Assistant.TranscriptionModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
		}
		logrus.Info("✅ Gemini AI initialized successfully")
	}

	if openaiService == nil && geminiService == nil {
		return nil, fmt.Errorf("no model provider configured: set OPENAI_API_KEY or GEMINI_API_KEY")
	}

	var chatOpenAI, chatGemini services.ChatProvider
	if openaiService != nil {
		chatOpenAI = openaiService
	}
	if geminiService != nil {
		chatGemini = geminiService
	}

	transcriber, err := services.NewTranscriber(cfg.Assistant.TranscriptionProvider, openaiService, geminiService)
	if err != nil {
		return nil, err
	}

	answerService := services.NewAnswerService(services.NewChatRouter(chatOpenAI, chatGemini))

	components := &Components{
		DB:          db,
		SessionRepo: sessionRepo,
		Storage:     storageService,
		PDFParser:   services.NewPDFParserService(),
	}

	var indexQueue services.IndexQueue
	if cfg.HistoryEnabled() {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant: %w", err)
		}

		if err := qdrantService.InitCollection(); err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant collection: %w", err)
		}
		logrus.Info("✅ Qdrant initialized successfully")

		components.History = services.NewHistoryService(sessionRepo, geminiService, qdrantService)
		components.Worker = services.NewWorker(
			sessionRepo,
			components.History,
			cfg.Worker.Concurrency,
			cfg.Worker.PollInterval,
		)
		indexQueue = components.Worker
	} else {
		logrus.Info("ℹ️  Question history disabled (set QDRANT_URL and GEMINI_API_KEY to enable)")
	}

	components.Interview = services.NewInterviewService(
		sessionRepo,
		transcriber,
		answerService,
		indexQueue,
		services.Defaults{
			Model:    cfg.Assistant.DefaultModel,
			Position: cfg.Assistant.DefaultPosition,
		},
	)
	logrus.Info("✅ Services initialized successfully")

	return components, nil
}
