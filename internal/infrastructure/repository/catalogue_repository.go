package repository

import (
	"context"
	"fmt"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type CatalogueRepository struct {
	db *gorm.DB
}

func NewCatalogueRepository(db *gorm.DB) *CatalogueRepository {
	return &CatalogueRepository{db: db}
}

func (r *CatalogueRepository) ListEmployees(ctx context.Context) ([]domain.EmployeeRef, error) {
	var rows []models.Employee
	if err := r.db.WithContext(ctx).Order("employee_number, email").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	employees := make([]domain.EmployeeRef, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, domain.EmployeeRef{
			ID:             row.ID,
			EmployeeNumber: derefText(row.EmployeeNumber),
			Email:          derefText(row.Email),
		})
	}
	return employees, nil
}

func (r *CatalogueRepository) ListTrainingTypes(ctx context.Context) ([]domain.TrainingTypeRef, error) {
	var rows []models.TrainingType
	if err := r.db.WithContext(ctx).Order("facility, name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list training types: %w", err)
	}

	types := make([]domain.TrainingTypeRef, 0, len(rows))
	for _, row := range rows {
		types = append(types, domain.TrainingTypeRef{
			ID:         row.ID,
			Name:       row.Name,
			Facility:   row.Facility,
			PeriodDays: row.PeriodDays,
		})
	}
	return types, nil
}

// ListExistingTrainings returns the (employee, type) pairs already on record.
// With excludeDeleted unset, soft-deleted trainings are included.
func (r *CatalogueRepository) ListExistingTrainings(ctx context.Context, excludeDeleted bool) ([]domain.ExistingTrainingRef, error) {
	query := r.db.WithContext(ctx).Model(&models.Training{})
	if !excludeDeleted {
		query = query.Unscoped()
	}

	var rows []models.Training
	if err := query.Select("id", "employee_id", "training_type_id", "last_training_date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	existing := make([]domain.ExistingTrainingRef, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, domain.ExistingTrainingRef{
			ID:               row.ID,
			EmployeeID:       row.EmployeeID,
			TrainingTypeID:   row.TrainingTypeID,
			LastTrainingDate: row.LastTrainingDate,
		})
	}
	return existing, nil
}

func derefText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
