package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-copilot/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	UpdateTranscript(id uuid.UUID, transcript, audioFormat string) error
	UpdateAnswers(id uuid.UUID, data *AnswerUpdateData) error
	MarkIndexed(id uuid.UUID, at time.Time) error
	FindUnindexed(limit int) ([]models.Session, error)
	FindAnswered() ([]models.Session, error)
}

// AnswerUpdateData carries the parameters and output of one generation.
type AnswerUpdateData struct {
	Model       string
	Position    string
	JobPosting  string
	Resume      string
	Transcript  string
	ShortAnswer string
	LongAnswer  string
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateTranscript(id uuid.UUID, transcript, audioFormat string) error {
	return r.update(id, map[string]interface{}{
		"transcript":   transcript,
		"audio_format": audioFormat,
		"updated_at":   time.Now(),
	})
}

// UpdateAnswers overwrites the answers and clears indexed_at so the
// history worker picks the session up again.
func (r *sessionRepository) UpdateAnswers(id uuid.UUID, data *AnswerUpdateData) error {
	return r.update(id, map[string]interface{}{
		"model":        data.Model,
		"position":     data.Position,
		"job_posting":  data.JobPosting,
		"resume":       data.Resume,
		"transcript":   data.Transcript,
		"short_answer": data.ShortAnswer,
		"long_answer":  data.LongAnswer,
		"indexed_at":   nil,
		"updated_at":   time.Now(),
	})
}

func (r *sessionRepository) MarkIndexed(id uuid.UUID, at time.Time) error {
	return r.update(id, map[string]interface{}{
		"indexed_at": at,
	})
}

func (r *sessionRepository) FindUnindexed(limit int) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.
		Where("short_answer <> '' AND long_answer <> '' AND indexed_at IS NULL").
		Order("updated_at ASC").
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed sessions: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepository) FindAnswered() ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.
		Where("short_answer <> '' AND long_answer <> ''").
		Order("created_at ASC").
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find answered sessions: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
