package models

import "time"

type ImportRun struct {
	ID              string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID       string `gorm:"type:uuid;not null;index"`
	FileName        string `gorm:"type:text;not null;default:''"`
	DuplicatePolicy string `gorm:"type:text;not null"`
	TotalRows       int64  `gorm:"not null;default:0"`
	ErrorRows       int64  `gorm:"not null;default:0"`
	InsertedCount   int64  `gorm:"not null;default:0"`
	UpdatedCount    int64  `gorm:"not null;default:0"`
	SkippedCount    int64  `gorm:"not null;default:0"`
	FailedCount     int64  `gorm:"not null;default:0"`
	Cancelled       bool   `gorm:"not null;default:false"`
	StartedAt       time.Time
	FinishedAt      time.Time
	CreatedAt       time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
