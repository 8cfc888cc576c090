package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber *string `gorm:"size:64;uniqueIndex"`
	Email          *string `gorm:"size:320;uniqueIndex"`
	FirstName      string  `gorm:"size:120"`
	LastName       string  `gorm:"size:120"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "employees"
}

type TrainingType struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Name       string `gorm:"size:255;not null"`
	Facility   string `gorm:"size:64;not null;index"`
	PeriodDays int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TrainingType) TableName() string {
	return "training_types"
}

type Training struct {
	ID               string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID       string    `gorm:"type:uuid;not null;index:idx_trainings_employee_type"`
	TrainingTypeID   string    `gorm:"type:uuid;not null;index:idx_trainings_employee_type"`
	Facility         string    `gorm:"size:64;not null"`
	LastTrainingDate time.Time `gorm:"type:date;not null"`
	NextTrainingDate time.Time `gorm:"type:date;not null"`
	Trainer          *string   `gorm:"size:255"`
	Company          *string   `gorm:"size:255"`
	Note             *string   `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Training) TableName() string {
	return "trainings"
}
