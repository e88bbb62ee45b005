package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

type MCQSessionRepository interface {
	Create(session *models.MCQSession) error
	FindByID(id string) (*models.MCQSession, error)
	Update(session *models.MCQSession) error
}

type mcqSessionRepository struct {
	db *gorm.DB
}

func NewMCQSessionRepository(db *gorm.DB) MCQSessionRepository {
	return &mcqSessionRepository{db: db}
}

func (r *mcqSessionRepository) Create(session *models.MCQSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create MCQ session: %w", err)
	}
	return nil
}

func (r *mcqSessionRepository) FindByID(id string) (*models.MCQSession, error) {
	var session models.MCQSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("MCQ session %s not found", id)
		}
		return nil, fmt.Errorf("failed to find MCQ session: %w", err)
	}
	return &session, nil
}

// Update is conditional on the version read at load time; the question
// list is fixed at creation and never written back.
func (r *mcqSessionRepository) Update(session *models.MCQSession) error {
	result := r.db.Model(&models.MCQSession{}).
		Where("id = ? AND version = ?", session.ID, session.Version).
		Updates(map[string]interface{}{
			"answers":                 session.Answers,
			"current_question_number": session.CurrentQuestionNumber,
			"is_complete":             session.IsComplete,
			"version":                 session.Version + 1,
			"updated_at":              time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update MCQ session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var exists int64
		r.db.Model(&models.MCQSession{}).Where("id = ?", session.ID).Count(&exists)
		if exists == 0 {
			return apperrors.NotFound("MCQ session %s not found", session.ID)
		}
		return apperrors.Conflict("MCQ session %s was modified concurrently", session.ID)
	}

	session.Version++
	return nil
}
