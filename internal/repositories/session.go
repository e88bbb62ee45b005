package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

type SessionRepository interface {
	Create(session *models.InterviewSession) error
	FindByID(id string) (*models.InterviewSession, error)
	Update(session *models.InterviewSession) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.InterviewSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session %s not found", id)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// Update writes the session's mutable fields back conditionally on the
// version read at load time. Two concurrent read-modify-write cycles on
// the same session cannot both win; the loser gets a conflict.
func (r *sessionRepository) Update(session *models.InterviewSession) error {
	result := r.db.Model(&models.InterviewSession{}).
		Where("id = ? AND version = ?", session.ID, session.Version).
		Updates(map[string]interface{}{
			"messages":       session.Messages,
			"question_count": session.QuestionCount,
			"is_complete":    session.IsComplete,
			"version":        session.Version + 1,
			"updated_at":     time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var exists int64
		r.db.Model(&models.InterviewSession{}).Where("id = ?", session.ID).Count(&exists)
		if exists == 0 {
			return apperrors.NotFound("session %s not found", session.ID)
		}
		return apperrors.Conflict("session %s was modified concurrently", session.ID)
	}

	session.Version++
	return nil
}
