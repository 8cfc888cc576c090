package trainingimport

import (
	"context"
	"fmt"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/sirupsen/logrus"
)

type PreviewImportInput struct {
	FileName string
	Rows     []domain.ImportRow
	// Settings overrides the configured thresholds when set.
	Settings *domain.Settings
}

type PreviewImportOutput = SessionOutput

type PreviewImport interface {
	Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error)
}

type previewImport struct {
	catalogue domain.CatalogueReader
	sessions  *SessionStore
	settings  domain.Settings
	metrics   ImportMetrics
	logger    logrus.FieldLogger
}

func NewPreviewImport(catalogue domain.CatalogueReader, sessions *SessionStore, settings domain.Settings, metrics ImportMetrics, logger logrus.FieldLogger) PreviewImport {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &previewImport{
		catalogue: catalogue,
		sessions:  sessions,
		settings:  settings,
		metrics:   metrics,
		logger:    logger,
	}
}

func (uc *previewImport) Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error) {
	if len(in.Rows) == 0 {
		return PreviewImportOutput{}, ErrEmptyImport
	}

	settings := uc.settings
	if in.Settings != nil {
		settings = *in.Settings
	}
	if err := settings.Validate(); err != nil {
		return PreviewImportOutput{}, err
	}

	catalogue, err := LoadCatalogue(ctx, uc.catalogue)
	if err != nil {
		return PreviewImportOutput{}, err
	}

	classifier, err := NewClassifier(catalogue, settings)
	if err != nil {
		return PreviewImportOutput{}, err
	}

	preview := classifier.Classify(in.Rows)
	session := uc.sessions.Create(in.FileName, settings, preview, classifier.Types())

	counts := preview.Counts()
	uc.metrics.ObservePreview(counts)
	uc.logger.WithFields(logrus.Fields{
		"session_id":   session.ID,
		"file":         in.FileName,
		"rows":         counts.Total,
		"valid":        counts.Valid,
		"auto_matched": counts.AutoMatched,
		"suggestions":  counts.Suggestions,
		"duplicates":   counts.Duplicates,
		"errors":       counts.Errors,
	}).Info("import preview created")

	return session.Output(), nil
}

// LoadCatalogue prefetches employees, training types and non-deleted
// trainings once so classification runs against in-memory indexes.
func LoadCatalogue(ctx context.Context, reader domain.CatalogueReader) (Catalogue, error) {
	employees, err := reader.ListEmployees(ctx)
	if err != nil {
		return Catalogue{}, fmt.Errorf("%w: employees: %v", ErrLoadCatalogue, err)
	}
	types, err := reader.ListTrainingTypes(ctx)
	if err != nil {
		return Catalogue{}, fmt.Errorf("%w: training types: %v", ErrLoadCatalogue, err)
	}
	existing, err := reader.ListExistingTrainings(ctx, true)
	if err != nil {
		return Catalogue{}, fmt.Errorf("%w: trainings: %v", ErrLoadCatalogue, err)
	}

	return Catalogue{
		Employees:         employees,
		TrainingTypes:     types,
		ExistingTrainings: existing,
	}, nil
}
