package training

import "context"

type CatalogueReader interface {
	ListEmployees(ctx context.Context) ([]EmployeeRef, error)
	ListTrainingTypes(ctx context.Context) ([]TrainingTypeRef, error)
	ListExistingTrainings(ctx context.Context, excludeDeleted bool) ([]ExistingTrainingRef, error)
}

type TrainingWriter interface {
	InsertTrainings(ctx context.Context, rows []NewTrainingRecord) error
	UpdateTraining(ctx context.Context, id string, fields TrainingUpdate) error
}

type ImportRunRecorder interface {
	Record(ctx context.Context, run ImportRun) (string, error)
}
