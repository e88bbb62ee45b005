package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

type ReportRepository interface {
	Create(report *models.InterviewReport) error
	FindBySessionID(sessionID string) (*models.InterviewReport, error)
	List(limit int) ([]models.InterviewReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.InterviewReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindBySessionID(sessionID string) (*models.InterviewReport, error) {
	var report models.InterviewReport
	if err := r.db.Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report for session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) List(limit int) ([]models.InterviewReport, error) {
	var reports []models.InterviewReport
	err := r.db.
		Order("generated_at DESC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, nil
}
