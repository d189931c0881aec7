package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

// fakeChat answers according to the length directive at the end of the prompt.
type fakeChat struct {
	mu       sync.Mutex
	requests []ChatRequest
	err      error
	failLong bool
}

func (f *fakeChat) Complete(_ context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if strings.HasSuffix(req.SystemPrompt, ShortInstruction) {
		return "short:" + req.UserMessage, nil
	}
	if f.failLong {
		return "", context.DeadlineExceeded
	}
	return "long:" + req.UserMessage, nil
}

func (f *fakeChat) calls() []ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ChatRequest(nil), f.requests...)
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ *AudioClip) (string, error) {
	return f.text, f.err
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]models.Session{}}
}

func (r *fakeSessionRepo) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &s, nil
}

func (r *fakeSessionRepo) UpdateTranscript(id uuid.UUID, transcript, audioFormat string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	s.Transcript = transcript
	s.AudioFormat = audioFormat
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) UpdateAnswers(id uuid.UUID, data *repositories.AnswerUpdateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	s.Model, s.Position = data.Model, data.Position
	s.JobPosting, s.Resume = data.JobPosting, data.Resume
	s.Transcript = data.Transcript
	s.ShortAnswer, s.LongAnswer = data.ShortAnswer, data.LongAnswer
	s.IndexedAt = nil
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) MarkIndexed(id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	s.IndexedAt = &at
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) FindUnindexed(limit int) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.HasAnswers() && s.IndexedAt == nil && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindAnswered() ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.HasAnswers() {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeIndexQueue struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (q *fakeIndexQueue) EnqueueSession(id uuid.UUID) {
	q.mu.Lock()
	q.ids = append(q.ids, id)
	q.mu.Unlock()
}
