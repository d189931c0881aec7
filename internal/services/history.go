package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

var ErrHistoryDisabled = errors.New("question history is not configured")

const maxHistoryResults = 20

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type HistoryService interface {
	IndexSession(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit int) ([]models.HistoryEntry, error)
}

type historyService struct {
	sessionRepo repositories.SessionRepository
	embedder    Embedder
	index       QdrantService
}

func NewHistoryService(sessionRepo repositories.SessionRepository, embedder Embedder, index QdrantService) HistoryService {
	return &historyService{
		sessionRepo: sessionRepo,
		embedder:    embedder,
		index:       index,
	}
}

// IndexSession embeds the session's transcript and stores it with its answers.
func (h *historyService) IndexSession(ctx context.Context, id uuid.UUID) error {
	session, err := h.sessionRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if !session.HasAnswers() || strings.TrimSpace(session.Transcript) == "" {
		return fmt.Errorf("session %s has nothing to index", id)
	}

	embedding, err := h.embedder.GenerateEmbedding(ctx, session.Transcript)
	if err != nil {
		return fmt.Errorf("failed to embed transcript: %w", err)
	}

	if err := h.index.UpsertSession(ctx, session, embedding); err != nil {
		return err
	}

	return h.sessionRepo.MarkIndexed(id, time.Now())
}

// Search returns past questions most similar to query.
func (h *historyService) Search(ctx context.Context, query string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > maxHistoryResults {
		limit = maxHistoryResults
	}

	embedding, err := h.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return h.index.SearchSimilar(ctx, embedding, limit)
}
