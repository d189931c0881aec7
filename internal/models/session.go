package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is the state of one interview interaction. The transcript is
// overwritten on every recording, the answers on every generation.
type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Model       string     `gorm:"type:text" json:"model"`
	Position    string     `gorm:"type:text" json:"position"`
	JobPosting  string     `gorm:"type:text" json:"job_posting"`
	Resume      string     `gorm:"type:text" json:"resume"`
	Transcript  string     `gorm:"type:text" json:"transcript"`
	AudioFormat string     `gorm:"type:text" json:"audio_format"`
	ShortAnswer string     `gorm:"type:text" json:"short_answer"`
	LongAnswer  string     `gorm:"type:text" json:"long_answer"`
	IndexedAt   *time.Time `json:"indexed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Session) TableName() string {
	return "interview_sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// HasAnswers reports whether both answers have been generated.
func (s *Session) HasAnswers() bool {
	return s.ShortAnswer != "" && s.LongAnswer != ""
}
