package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgblog/internal/dto"
	"orgblog/internal/models"
)

// ReportService handles reader complaints about comments. Creation is open
// to any authenticated user; listing and actioning sit behind the global
// admin gate.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Create(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.CommentReport, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"comment_id": "must be a valid UUID"}}
	}

	var comment models.Comment
	if err := s.db.WithContext(ctx).Select("id").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	report := models.CommentReport{
		ID:         uuid.New(),
		CommentID:  commentID,
		ReporterID: reporterID,
		Reason:     req.Reason,
		Status:     models.ReportPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return &report, nil
}

func (s *ReportService) List(ctx context.Context, status string, limit, offset int) ([]models.CommentReport, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.CommentReport{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	var reports []models.CommentReport
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return reports, total, nil
}

// Action resolves a report. Actioning deletes the offending comment in the
// same transaction as the status update.
func (s *ReportService) Action(ctx context.Context, reportID uuid.UUID, req *dto.ActionReportRequest) error {
	if err := checkStruct(req); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.CommentReport
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}

		report.Status = req.Status
		report.ModeratorNote = req.ModeratorNote
		if err := tx.Save(&report).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}

		if req.Status == models.ReportActioned {
			if err := tx.Delete(&models.Comment{}, "id = ?", report.CommentID).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrOperationFailed, err)
			}
		}
		return nil
	})
}
