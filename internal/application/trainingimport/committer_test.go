package trainingimport_test

import (
	"context"
	"testing"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

// validPreview builds n valid rows for employee emp-1 with a 365 day period.
func validPreview(n int) *app.Preview {
	rows := make([]*app.ParsedRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &app.ParsedRow{
			RowNumber: i + 2,
			Row:       row("E001", "", "BOZP", "fac-1", "2024-01-10"),
			Outcome: &app.Valid{Resolution: app.Resolution{
				EmployeeID:       "emp-1",
				LastTrainingDate: date("2024-01-10"),
				Match: app.TypeMatch{
					TrainingTypeID: "t-bozp",
					Facility:       "fac-1",
					PeriodDays:     365,
					Confidence:     100,
				},
			}},
		})
	}
	return app.NewPreview(rows)
}

func TestCommitInsertsInChunks(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	committer := app.NewCommitter(writer, app.CommitterConfig{}, quietLogger())

	var progress []app.CommitProgress
	result := committer.Commit(context.Background(), app.PlanCommit(validPreview(120), domain.DuplicatePolicySkip), func(p app.CommitProgress) {
		progress = append(progress, p)
	})

	require.Len(t, writer.inserts, 3)
	assert.Len(t, writer.inserts[0], 50)
	assert.Len(t, writer.inserts[1], 50)
	assert.Len(t, writer.inserts[2], 20)
	assert.Equal(t, 120, result.Inserted)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.Cancelled)
	assert.Equal(t, []app.CommitProgress{{Processed: 50, Total: 120}, {Processed: 100, Total: 120}, {Processed: 120, Total: 120}}, progress)

	record := writer.inserts[0][0]
	assert.Equal(t, "emp-1", record.EmployeeID)
	assert.Equal(t, "t-bozp", record.TrainingTypeID)
	assert.Equal(t, date("2025-01-09"), record.NextTrainingDate)
}

func TestCommitChunkFailureIsIsolated(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{failInsertAt: map[int]bool{1: true}}
	committer := app.NewCommitter(writer, app.CommitterConfig{ChunkSize: 50}, quietLogger())

	result := committer.Commit(context.Background(), app.PlanCommit(validPreview(120), domain.DuplicatePolicySkip), nil)

	assert.Len(t, writer.inserts, 3)
	assert.Equal(t, 70, result.Inserted)
	assert.Equal(t, 50, result.Failed)
	require.Len(t, result.Failures, 50)
	assert.Equal(t, 52, result.Failures[0].RowNumber)
	assert.Contains(t, result.Failures[0].Reason, "constraint violation")
}

func TestCommitCancellationStopsBeforeNextChunk(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := &fakeWriter{onInsert: func(call int) {
		if call == 0 {
			cancel()
		}
	}}
	committer := app.NewCommitter(writer, app.CommitterConfig{ChunkSize: 50}, quietLogger())

	result := committer.Commit(ctx, app.PlanCommit(validPreview(120), domain.DuplicatePolicySkip), nil)

	assert.Len(t, writer.inserts, 1)
	assert.False(t, writer.cancelledCtx, "in-flight chunk must not see the cancellation")
	assert.True(t, result.Cancelled)
	assert.Equal(t, 50, result.Inserted)
	assert.Equal(t, 70, result.NotAttempted)
}

func TestCommitCancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writer := &fakeWriter{}
	committer := app.NewCommitter(writer, app.CommitterConfig{}, quietLogger())

	preview := classify(t, testRows())
	result := committer.Commit(ctx, app.PlanCommit(preview, domain.DuplicatePolicyOverwrite), nil)

	assert.Empty(t, writer.inserts)
	assert.Empty(t, writer.updates)
	assert.True(t, result.Cancelled)
	assert.Equal(t, 4, result.NotAttempted)
	assert.Equal(t, 2, result.Skipped)
}

func TestCommitDuplicateSkip(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	committer := app.NewCommitter(writer, app.CommitterConfig{}, quietLogger())

	preview := classify(t, testRows())
	plan := app.PlanCommit(preview, domain.DuplicatePolicySkip)
	result := committer.Commit(context.Background(), plan, nil)

	// valid 2 + auto_matched 1 inserted; duplicate and two unapproved suggestions skipped.
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 6, result.ErrorRows)
	assert.Empty(t, writer.updates)
	assert.Equal(t, plan.Submitted(), result.Inserted+result.Updated+result.Skipped+result.Failed)
}

func TestCommitDuplicateOverwrite(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	committer := app.NewCommitter(writer, app.CommitterConfig{}, quietLogger())

	preview, review := newReview(t)
	require.NoError(t, review.Approve(10))

	plan := app.PlanCommit(preview, domain.DuplicatePolicyOverwrite)
	result := committer.Commit(context.Background(), plan, nil)

	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, plan.Submitted(), result.Inserted+result.Updated+result.Skipped+result.Failed)

	require.Len(t, writer.updates, 1)
	assert.Equal(t, "tr-1", writer.updates[0].id)
	assert.Equal(t, date("2024-01-10"), writer.updates[0].fields.LastTrainingDate)
	assert.Equal(t, date("2026-01-09"), writer.updates[0].fields.NextTrainingDate)
}

func TestCommitUpdateFailureAffectsOnlyThatRow(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{failUpdateIDs: map[string]bool{"tr-1": true}}
	committer := app.NewCommitter(writer, app.CommitterConfig{}, quietLogger())

	preview := classify(t, testRows())
	plan := app.PlanCommit(preview, domain.DuplicatePolicyOverwrite)
	result := committer.Commit(context.Background(), plan, nil)

	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 5, result.Failures[0].RowNumber)
	assert.Equal(t, plan.Submitted(), result.Inserted+result.Updated+result.Skipped+result.Failed)
}
