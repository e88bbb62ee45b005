package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type RecommendationType string

const (
	RecommendationStrong RecommendationType = "Strongly Recommended for Next Round"
	RecommendationYes    RecommendationType = "Recommended for Next Round"
	RecommendationMaybe  RecommendationType = "Maybe - Consider for Next Round"
	RecommendationNo     RecommendationType = "Not Recommended"
)

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

type InterviewReport struct {
	ID               string             `gorm:"type:uuid;primary_key" json:"id"`
	SessionID        string             `gorm:"type:uuid;not null;index" json:"session_id"`
	CandidateName    string             `gorm:"type:text" json:"candidate_name"`
	SkillMatch       int                `gorm:"not null" json:"skill_match"`
	ExperienceMatch  int                `gorm:"not null" json:"experience_match"`
	Communication    int                `gorm:"not null" json:"communication"`
	ProblemSolving   int                `gorm:"not null" json:"problem_solving"`
	OverallFit       int                `gorm:"not null" json:"overall_fit"`
	Recommendation   RecommendationType `gorm:"type:text;not null" json:"recommendation"`
	Strengths        StringList         `gorm:"type:jsonb" json:"strengths"`
	Weaknesses       StringList         `gorm:"type:jsonb" json:"weaknesses"`
	DetailedFeedback string             `gorm:"type:text" json:"detailed_feedback"`
	Transcript       MessageList        `gorm:"type:jsonb" json:"transcript"`
	GeneratedAt      time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"generated_at"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}

type CategoryScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type CategoryScoreMap map[string]CategoryScore

func (c CategoryScoreMap) Value() (driver.Value, error) {
	if c == nil {
		c = CategoryScoreMap{}
	}
	return json.Marshal(c)
}

func (c *CategoryScoreMap) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryScoreMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type for CategoryScoreMap: %T", value)
	}
}

type MCQReport struct {
	ID                  string           `gorm:"type:uuid;primary_key" json:"id"`
	SessionID           string           `gorm:"type:uuid;not null;index" json:"session_id"`
	CandidateName       string           `gorm:"type:text" json:"candidate_name"`
	TotalQuestions      int              `gorm:"not null" json:"total_questions"`
	CorrectAnswers      int              `gorm:"not null" json:"correct_answers"`
	ScorePercentage     float64          `gorm:"not null" json:"score_percentage"`
	CategoryScores      CategoryScoreMap `gorm:"type:jsonb" json:"category_scores"`
	Answers             AnswerList       `gorm:"type:jsonb" json:"answers"`
	OverallAssessment   string           `gorm:"type:text" json:"overall_assessment"`
	CognitiveStrengths  StringList       `gorm:"type:jsonb" json:"cognitive_strengths"`
	AreasForImprovement StringList       `gorm:"type:jsonb" json:"areas_for_improvement"`
	Recommendation      string           `gorm:"type:text" json:"recommendation"`
	GeneratedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"generated_at"`
}

func (MCQReport) TableName() string {
	return "mcq_reports"
}
