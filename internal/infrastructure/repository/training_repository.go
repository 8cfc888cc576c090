package repository

import (
	"context"
	"fmt"
	"time"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var trainingColumns = []string{
	"employee_id",
	"training_type_id",
	"facility",
	"last_training_date",
	"next_training_date",
	"trainer",
	"company",
	"note",
	"created_at",
	"updated_at",
}

type TrainingRepository struct {
	pool *pgxpool.Pool
}

func NewTrainingRepository(pool *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{pool: pool}
}

// InsertTrainings writes one chunk in a single transaction; either every row
// of the chunk lands or none does.
func (r *TrainingRepository) InsertTrainings(ctx context.Context, records []domain.NewTrainingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, []any{
			record.EmployeeID,
			record.TrainingTypeID,
			record.Facility,
			record.LastTrainingDate,
			record.NextTrainingDate,
			nullableText(record.Trainer),
			nullableText(record.Company),
			nullableText(record.Note),
			now,
			now,
		})
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"trainings"}, trainingColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy trainings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit trainings chunk: %w", err)
	}
	return nil
}

// UpdateTraining rewrites the dates of an existing training. Empty optional
// fields keep their stored value.
func (r *TrainingRepository) UpdateTraining(ctx context.Context, id string, fields domain.TrainingUpdate) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE trainings
   SET last_training_date = $2,
       next_training_date = $3,
       trainer = COALESCE($4, trainer),
       company = COALESCE($5, company),
       note = COALESCE($6, note),
       updated_at = NOW()
 WHERE id = $1 AND deleted_at IS NULL
`, id, fields.LastTrainingDate, fields.NextTrainingDate, nullableText(fields.Trainer), nullableText(fields.Company), nullableText(fields.Note))
	if err != nil {
		return fmt.Errorf("update training %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTrainingNotFound, id)
	}
	return nil
}
