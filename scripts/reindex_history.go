package main

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/app"
	"alfredoptarigan/interview-copilot/internal/config"
)

// Rebuilds the question history index from every answered session.
func main() {
	logrus.Info("🚀 Starting history reindex...")

	cfg := config.Load()
	if !cfg.HistoryEnabled() {
		logrus.Fatal("❌ History is disabled: set QDRANT_URL and GEMINI_API_KEY")
	}

	components, err := app.Build(cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize: %v", err)
	}

	sessions, err := components.SessionRepo.FindAnswered()
	if err != nil {
		logrus.Fatalf("❌ Failed to load sessions: %v", err)
	}
	logrus.Infof("📋 Found %d answered sessions", len(sessions))

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for i, session := range sessions {
		if err := components.History.IndexSession(ctx, session.ID); err != nil {
			logrus.Errorf("   ❌ Failed to index session %s: %v", session.ID, err)
			failCount++
			continue
		}
		successCount++

		if (i+1)%10 == 0 || i == len(sessions)-1 {
			logrus.Infof("   📊 Progress: %d/%d sessions", i+1, len(sessions))
		}
	}

	// Summary
	logrus.Info(strings.Repeat("=", 60))
	logrus.Info("📊 Reindex Summary:")
	logrus.Infof("   ✅ Indexed: %d sessions", successCount)
	logrus.Infof("   ❌ Failed: %d sessions", failCount)
	logrus.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		logrus.Warn("⚠️  Some sessions failed to index. Please check the logs above.")
		os.Exit(1)
	}

	logrus.Info("✅ History reindexed successfully!")
}
