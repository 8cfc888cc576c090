package repository

import (
	"context"
	"fmt"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Record(ctx context.Context, run domain.ImportRun) (string, error) {
	row := models.ImportRun{
		SessionID:       run.SessionID,
		FileName:        run.FileName,
		DuplicatePolicy: string(run.DuplicatePolicy),
		TotalRows:       int64(run.TotalRows),
		ErrorRows:       int64(run.ErrorRows),
		InsertedCount:   int64(run.InsertedCount),
		UpdatedCount:    int64(run.UpdatedCount),
		SkippedCount:    int64(run.SkippedCount),
		FailedCount:     int64(run.FailedCount),
		Cancelled:       run.Cancelled,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create import run: %w", err)
	}

	return row.ID, nil
}
