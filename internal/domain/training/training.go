package training

import "time"

type EmployeeRef struct {
	ID             string
	EmployeeNumber string
	Email          string
}

type TrainingTypeRef struct {
	ID         string
	Name       string
	Facility   string
	PeriodDays int
}

type ExistingTrainingRef struct {
	ID               string
	EmployeeID       string
	TrainingTypeID   string
	LastTrainingDate time.Time
}

type NewTrainingRecord struct {
	EmployeeID       string
	TrainingTypeID   string
	Facility         string
	LastTrainingDate time.Time
	NextTrainingDate time.Time
	Trainer          string
	Company          string
	Note             string
}

// TrainingUpdate carries the fields rewritten when an existing training is
// overwritten by an imported row. Empty optional fields keep their stored value.
type TrainingUpdate struct {
	LastTrainingDate time.Time
	NextTrainingDate time.Time
	Trainer          string
	Company          string
	Note             string
}

// NextTrainingDate adds the period in calendar days.
func NextTrainingDate(last time.Time, periodDays int) time.Time {
	return last.AddDate(0, 0, periodDays)
}
