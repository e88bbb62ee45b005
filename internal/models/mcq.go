package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MCQOption struct {
	Option string `json:"option" validate:"required,oneof=A B C D"`
	Text   string `json:"text" validate:"required"`
}

type MCQQuestion struct {
	QuestionNumber int         `json:"question_number"`
	Category       string      `json:"category" validate:"required"`
	QuestionText   string      `json:"question_text" validate:"required"`
	Options        []MCQOption `json:"options" validate:"required,len=4,dive"`
	CorrectOption  string      `json:"correct_option" validate:"required,oneof=A B C D"`
	Explanation    string      `json:"explanation" validate:"required"`
}

type MCQAnswer struct {
	QuestionNumber int       `json:"question_number"`
	QuestionText   string    `json:"question_text"`
	SelectedOption string    `json:"selected_option"`
	SelectedText   string    `json:"selected_text"`
	CorrectOption  string    `json:"correct_option"`
	IsCorrect      bool      `json:"is_correct"`
	Explanation    string    `json:"explanation"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type QuestionList []MCQQuestion

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		q = QuestionList{}
	}
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("unsupported type for QuestionList: %T", value)
	}
}

type AnswerList []MCQAnswer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		a = AnswerList{}
	}
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported type for AnswerList: %T", value)
	}
}

type MCQSession struct {
	ID                    string       `gorm:"type:uuid;primary_key" json:"id"`
	SessionID             string       `gorm:"type:uuid;not null;index" json:"session_id"`
	CandidateName         string       `gorm:"type:text" json:"candidate_name"`
	CandidateEmail        string       `gorm:"type:text" json:"candidate_email"`
	ResumeText            string       `gorm:"type:text" json:"resume_text"`
	JobDescription        string       `gorm:"type:text" json:"job_description"`
	Questions             QuestionList `gorm:"type:jsonb" json:"questions"`
	Answers               AnswerList   `gorm:"type:jsonb" json:"answers"`
	CurrentQuestionNumber int          `gorm:"not null;default:0" json:"current_question_number"`
	IsComplete            bool         `gorm:"not null;default:false" json:"is_complete"`
	Version               int          `gorm:"not null;default:0" json:"-"`
	CreatedAt             time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MCQSession) TableName() string {
	return "mcq_sessions"
}
