package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

var (
	ErrTranscription     = errors.New("transcription failed")
	ErrGeneration        = errors.New("answer generation failed")
	ErrMissingTranscript = errors.New("transcript is required")
)

// IndexQueue receives sessions whose answers should be added to the history index.
type IndexQueue interface {
	EnqueueSession(id uuid.UUID)
}

// Defaults fills in request parameters the caller left empty.
type Defaults struct {
	Model    string
	Position string
}

type InterviewService interface {
	TranscribeClip(ctx context.Context, sessionID string, clip *AudioClip) (*models.Session, error)
	GenerateAnswers(ctx context.Context, req *models.GenerateAnswerRequest) (*models.GenerateAnswerResponse, error)
	GetSession(sessionID string) (*models.Session, error)
}

type interviewService struct {
	sessionRepo repositories.SessionRepository
	transcriber Transcriber
	answers     AnswerService
	indexQueue  IndexQueue
	defaults    Defaults
}

// NewInterviewService wires the capture → transcribe → answer sequence.
// indexQueue may be nil when question history is disabled.
func NewInterviewService(
	sessionRepo repositories.SessionRepository,
	transcriber Transcriber,
	answers AnswerService,
	indexQueue IndexQueue,
	defaults Defaults,
) InterviewService {
	return &interviewService{
		sessionRepo: sessionRepo,
		transcriber: transcriber,
		answers:     answers,
		indexQueue:  indexQueue,
		defaults:    defaults,
	}
}

// TranscribeClip transcribes the clip into the given session, creating one
// when sessionID is empty or unknown. A failed transcription leaves the
// stored session untouched.
func (s *interviewService) TranscribeClip(ctx context.Context, sessionID string, clip *AudioClip) (*models.Session, error) {
	session := s.lookupSession(sessionID)

	logrus.Infof("🎙️  Transcribing %d bytes of %s audio...", len(clip.Data), clip.Format)
	transcript, err := s.transcriber.Transcribe(ctx, clip)
	if err != nil {
		logrus.Errorf("❌ Transcription error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	logrus.Info("✅ Audio transcription completed")

	if session == nil {
		session = &models.Session{
			Transcript:  transcript,
			AudioFormat: string(clip.Format),
			Model:       s.defaults.Model,
			Position:    s.defaults.Position,
		}
		if err := s.sessionRepo.Create(session); err != nil {
			return nil, fmt.Errorf("failed to store transcript: %w", err)
		}
		return session, nil
	}

	if err := s.sessionRepo.UpdateTranscript(session.ID, transcript, string(clip.Format)); err != nil {
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}
	session.Transcript = transcript
	session.AudioFormat = string(clip.Format)

	return session, nil
}

// GenerateAnswers produces the short and long answers. The transcript comes
// from the request, or from the stored session when the request omits it.
func (s *interviewService) GenerateAnswers(ctx context.Context, req *models.GenerateAnswerRequest) (*models.GenerateAnswerResponse, error) {
	session := s.lookupSession(req.SessionID)

	transcript := req.Transcript
	if transcript == "" && session != nil {
		transcript = session.Transcript
	}
	if transcript == "" {
		return nil, ErrMissingTranscript
	}

	answerReq := AnswerRequest{
		Transcript: transcript,
		Model:      valueOr(req.Model, s.defaults.Model),
		PromptContext: PromptContext{
			Position:   valueOr(req.Position, s.defaults.Position),
			JobPosting: req.JobPosting,
			Resume:     req.Resume,
		},
	}

	logrus.Infof("🤖 Generating answers with %s for a %s position...", answerReq.Model, answerReq.Position)
	answers, err := s.answers.GenerateAnswers(ctx, answerReq)
	if err != nil {
		logrus.Errorf("❌ Answer generation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	resp := &models.GenerateAnswerResponse{
		ShortAnswer: answers.Short,
		LongAnswer:  answers.Long,
	}

	update := &repositories.AnswerUpdateData{
		Model:       answerReq.Model,
		Position:    answerReq.Position,
		JobPosting:  answerReq.JobPosting,
		Resume:      answerReq.Resume,
		Transcript:  transcript,
		ShortAnswer: answers.Short,
		LongAnswer:  answers.Long,
	}

	sessionID, err := s.storeAnswers(session, update)
	if err != nil {
		// The answers are still useful to the caller without a session.
		logrus.Warnf("⚠️  Failed to store answers: %v", err)
		return resp, nil
	}

	resp.SessionID = sessionID.String()
	if s.indexQueue != nil {
		s.indexQueue.EnqueueSession(sessionID)
	}

	return resp, nil
}

func (s *interviewService) GetSession(sessionID string) (*models.Session, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, repositories.ErrSessionNotFound
	}
	return s.sessionRepo.FindByID(id)
}

func (s *interviewService) storeAnswers(session *models.Session, data *repositories.AnswerUpdateData) (uuid.UUID, error) {
	if session != nil {
		if err := s.sessionRepo.UpdateAnswers(session.ID, data); err != nil {
			return uuid.Nil, err
		}
		return session.ID, nil
	}

	created := &models.Session{
		Model:       data.Model,
		Position:    data.Position,
		JobPosting:  data.JobPosting,
		Resume:      data.Resume,
		Transcript:  data.Transcript,
		ShortAnswer: data.ShortAnswer,
		LongAnswer:  data.LongAnswer,
	}
	if err := s.sessionRepo.Create(created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// lookupSession returns nil for empty, malformed or unknown ids.
func (s *interviewService) lookupSession(sessionID string) *models.Session {
	if sessionID == "" {
		return nil
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		logrus.Warnf("⚠️  Ignoring malformed session id %q", sessionID)
		return nil
	}

	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if !errors.Is(err, repositories.ErrSessionNotFound) {
			logrus.Warnf("⚠️  Failed to load session %s: %v", id, err)
		}
		return nil
	}

	return session
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
