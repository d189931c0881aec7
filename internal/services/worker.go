package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/repositories"
)

// Worker indexes answered sessions into the question history in the background.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSession(id uuid.UUID)
}

type worker struct {
	sessionRepo  repositories.SessionRepository
	history      HistoryService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	sessionRepo repositories.SessionRepository,
	history HistoryService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return &worker{
		sessionRepo:  sessionRepo,
		history:      history,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	logrus.Infof("🚀 Starting history worker with %d concurrent workers", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		logrus.Info("🛑 Stopping history worker...")
		close(w.stopChan)
		w.wg.Wait()
		logrus.Info("✅ History worker stopped")
	})
}

// EnqueueSession implements Worker. A full queue drops the id; the poller
// picks the session up later since it stays unindexed.
func (w *worker) EnqueueSession(id uuid.UUID) {
	select {
	case <-w.stopChan:
		logrus.Warnf("⚠️  Worker stopped, cannot enqueue session %s", id)
	case w.jobQueue <- id:
		logrus.Debugf("📥 Session %s enqueued for indexing", id)
	default:
		logrus.Warnf("⚠️  Index queue full, deferring session %s to the poller", id)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			logrus.Debugf("👷 Worker #%d stopped", workerID)
			return
		case <-ctx.Done():
			return
		case id := <-w.jobQueue:
			if err := w.history.IndexSession(ctx, id); err != nil {
				logrus.Errorf("❌ Worker #%d failed to index session %s: %v", workerID, id, err)
			} else {
				logrus.Infof("✅ Worker #%d indexed session %s", workerID, id)
			}
		}
	}
}

func (w *worker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions, err := w.sessionRepo.FindUnindexed(10)
			if err != nil {
				logrus.Warnf("⚠️  Failed to fetch unindexed sessions: %v", err)
				continue
			}

			if len(sessions) > 0 {
				logrus.Infof("📋 Found %d unindexed sessions", len(sessions))
			}

			for _, session := range sessions {
				w.EnqueueSession(session.ID)
			}
		}
	}
}
