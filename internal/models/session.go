package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	SenderCandidate = "candidate"
	SenderAssistant = "assistant"
)

type ChatMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageList is stored as a single jsonb column on the session row.
type MessageList []ChatMessage

func (m MessageList) Value() (driver.Value, error) {
	if m == nil {
		m = MessageList{}
	}
	return json.Marshal(m)
}

func (m *MessageList) Scan(value interface{}) error {
	if value == nil {
		*m = MessageList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for MessageList: %T", value)
	}
}

type InterviewSession struct {
	ID             string      `gorm:"type:uuid;primary_key" json:"id"`
	SessionID      string      `gorm:"type:uuid;not null;index" json:"session_id"`
	CandidateName  string      `gorm:"type:text" json:"candidate_name"`
	CandidateEmail string      `gorm:"type:text" json:"candidate_email"`
	ResumeText     string      `gorm:"type:text" json:"resume_text"`
	JobDescription string      `gorm:"type:text" json:"job_description"`
	Messages       MessageList `gorm:"type:jsonb" json:"messages"`
	QuestionCount  int         `gorm:"not null;default:0" json:"question_count"`
	IsComplete     bool        `gorm:"not null;default:false" json:"is_complete"`
	Version        int         `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
