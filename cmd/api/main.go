package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/app"
	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/handlers"
	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/web"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg := config.Load()
	if cfg.Server.Env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info("✅ Config loaded successfully")

	components, err := app.Build(cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize: %v", err)
	}

	// Start worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if components.Worker != nil {
		components.Worker.Start(ctx)
		logrus.Info("✅ Worker started successfully")
	}

	// Initialize Handlers
	transcribeHandler := handlers.NewTranscribeHandler(components.Interview, cfg.Storage.MaxAudioSize)
	answerHandler := handlers.NewAnswerHandler(components.Interview)
	sessionHandler := handlers.NewSessionHandler(components.Interview, models.ModelsResponse{
		Models:          cfg.Assistant.Models,
		DefaultModel:    cfg.Assistant.DefaultModel,
		DefaultPosition: cfg.Assistant.DefaultPosition,
	})
	resumeHandler := handlers.NewResumeHandler(components.PDFParser, cfg.Storage.MaxResumeSize)
	historyHandler := handlers.NewHistoryHandler(components.History)
	recordHandler := handlers.NewRecordHandler(components.Interview, cfg.Storage.MaxAudioSize, 2*time.Minute)
	logrus.Info("✅ Handlers initialized")

	// Create Fiber app
	server := fiber.New(fiber.Config{
		AppName:      "Interview Copilot",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    cfg.Storage.BodyLimit(),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	server.Use(recover.New())
	server.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Root route
	server.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(web.IndexHTML)
	})

	server.Post("/transcribe", transcribeHandler.HandleTranscribe)
	server.Post("/generate_answer", answerHandler.HandleGenerateAnswer)
	server.Post("/resume", resumeHandler.HandleResume)
	server.Get("/models", sessionHandler.HandleModels)
	server.Get("/sessions/:id", sessionHandler.HandleGetSession)
	server.Get("/history/search", historyHandler.HandleSearch)

	server.Use("/ws", handlers.UpgradeCheck)
	server.Get("/ws/record", websocket.New(recordHandler.HandleRecord))

	// Health check
	api := server.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now(),
			"history": components.History != nil,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logrus.Info("🛑 Shutting down server...")
		if components.Worker != nil {
			components.Worker.Stop()
		}
		if err := server.Shutdown(); err != nil {
			logrus.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.Infof("🚀 Server starting on %s", addr)
	logrus.Infof("📖 Open http://localhost%s in your browser", addr)

	if err := server.Listen(addr); err != nil {
		logrus.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
