package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

type MCQReportRepository interface {
	Create(report *models.MCQReport) error
	FindBySessionID(sessionID string) (*models.MCQReport, error)
}

type mcqReportRepository struct {
	db *gorm.DB
}

func NewMCQReportRepository(db *gorm.DB) MCQReportRepository {
	return &mcqReportRepository{db: db}
}

func (r *mcqReportRepository) Create(report *models.MCQReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create MCQ report: %w", err)
	}
	return nil
}

func (r *mcqReportRepository) FindBySessionID(sessionID string) (*models.MCQReport, error) {
	var report models.MCQReport
	if err := r.db.Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("MCQ report for session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to find MCQ report: %w", err)
	}
	return &report, nil
}
