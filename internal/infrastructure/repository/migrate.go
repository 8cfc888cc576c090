package repository

import (
	"fmt"

	"github.com/ekaterinavoj/validity-view/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables the import reads and writes.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("create pgcrypto extension: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.TrainingType{},
		&models.Training{},
		&models.ImportRun{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
