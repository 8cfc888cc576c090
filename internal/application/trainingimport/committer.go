package trainingimport

import (
	"context"
	"strings"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/sirupsen/logrus"
)

const (
	DefaultChunkSize  = 50
	maxStoredFailures = 100
)

type CommitProgress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
}

type CommitFailure struct {
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
}

// BatchResult tallies one commit run. Rows in the error bucket are reported in
// ErrorRows and never counted as skipped. NotAttempted is only non-zero when
// the run was cancelled.
type BatchResult struct {
	Inserted     int             `json:"inserted"`
	Updated      int             `json:"updated"`
	Skipped      int             `json:"skipped"`
	Failed       int             `json:"failed"`
	ErrorRows    int             `json:"error_rows"`
	NotAttempted int             `json:"not_attempted"`
	Cancelled    bool            `json:"cancelled"`
	Failures     []CommitFailure `json:"failures,omitempty"`
}

func (r *BatchResult) addFailure(rowNumber int, err error) {
	r.Failed++
	if len(r.Failures) < maxStoredFailures {
		r.Failures = append(r.Failures, CommitFailure{RowNumber: rowNumber, Reason: truncateReason(err.Error())})
	}
}

type pendingInsert struct {
	rowNumber int
	record    domain.NewTrainingRecord
}

type pendingUpdate struct {
	rowNumber  int
	trainingID string
	fields     domain.TrainingUpdate
}

// CommitPlan is a snapshot of the rows a commit will write, taken from a
// preview so later review changes cannot leak into a running commit.
type CommitPlan struct {
	Policy    domain.DuplicatePolicy
	inserts   []pendingInsert
	updates   []pendingUpdate
	skipped   int
	errorRows int
}

// PlanCommit selects valid, auto-matched and approved suggestion rows for
// insert, and duplicates for update when the policy is overwrite. Unapproved
// suggestions and skipped duplicates are counted as skipped.
func PlanCommit(preview *Preview, policy domain.DuplicatePolicy) CommitPlan {
	plan := CommitPlan{Policy: policy}

	for _, row := range preview.Rows() {
		switch o := row.Outcome.(type) {
		case *Rejected:
			plan.errorRows++
		case *Valid:
			plan.inserts = append(plan.inserts, newInsert(row, o.Resolution))
		case *AutoMatched:
			plan.inserts = append(plan.inserts, newInsert(row, o.Resolution))
		case *Suggestion:
			if !o.Approved {
				plan.skipped++
				continue
			}
			plan.inserts = append(plan.inserts, newInsert(row, o.Resolution))
		case *Duplicate:
			if policy != domain.DuplicatePolicyOverwrite {
				plan.skipped++
				continue
			}
			plan.updates = append(plan.updates, pendingUpdate{
				rowNumber:  row.RowNumber,
				trainingID: o.ExistingTrainingID,
				fields: domain.TrainingUpdate{
					LastTrainingDate: o.LastTrainingDate,
					NextTrainingDate: domain.NextTrainingDate(o.LastTrainingDate, o.Match.PeriodDays),
					Trainer:          row.Row.Trainer,
					Company:          row.Row.Company,
					Note:             row.Row.Note,
				},
			})
		}
	}

	return plan
}

func newInsert(row *ParsedRow, resolution Resolution) pendingInsert {
	return pendingInsert{
		rowNumber: row.RowNumber,
		record: domain.NewTrainingRecord{
			EmployeeID:       resolution.EmployeeID,
			TrainingTypeID:   resolution.Match.TrainingTypeID,
			Facility:         resolution.Match.Facility,
			LastTrainingDate: resolution.LastTrainingDate,
			NextTrainingDate: domain.NextTrainingDate(resolution.LastTrainingDate, resolution.Match.PeriodDays),
			Trainer:          row.Row.Trainer,
			Company:          row.Row.Company,
			Note:             row.Row.Note,
		},
	}
}

// Total is the number of rows the plan will write.
func (p CommitPlan) Total() int {
	return len(p.inserts) + len(p.updates)
}

// Submitted is every non-error row: written plus skipped.
func (p CommitPlan) Submitted() int {
	return p.Total() + p.skipped
}

type CommitterConfig struct {
	ChunkSize int
}

// Committer writes a plan in chunks of inserts followed by one update per
// duplicate. Failures are isolated to their chunk or row and never abort the
// run; nothing is rolled back.
type Committer struct {
	writer domain.TrainingWriter
	cfg    CommitterConfig
	logger logrus.FieldLogger
}

func NewCommitter(writer domain.TrainingWriter, cfg CommitterConfig, logger logrus.FieldLogger) *Committer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Committer{
		writer: writer,
		cfg:    cfg,
		logger: logger,
	}
}

// Commit runs the plan. Cancelling ctx stops the run before the next chunk or
// update; a unit already sent to the writer is allowed to finish.
func (c *Committer) Commit(ctx context.Context, plan CommitPlan, onProgress func(CommitProgress)) BatchResult {
	result := BatchResult{Skipped: plan.skipped, ErrorRows: plan.errorRows}
	progress := CommitProgress{Total: plan.Total()}
	writeCtx := context.WithoutCancel(ctx)

	report := func(n int) {
		progress.Processed += n
		if onProgress != nil {
			onProgress(progress)
		}
	}

	for start := 0; start < len(plan.inserts); start += c.cfg.ChunkSize {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		chunk := plan.inserts[start:min(start+c.cfg.ChunkSize, len(plan.inserts))]
		records := make([]domain.NewTrainingRecord, 0, len(chunk))
		for _, pending := range chunk {
			records = append(records, pending.record)
		}

		if err := c.writer.InsertTrainings(writeCtx, records); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"first_row": chunk[0].rowNumber,
				"rows":      len(chunk),
			}).Warn("insert chunk failed")
			for _, pending := range chunk {
				result.addFailure(pending.rowNumber, err)
			}
		} else {
			result.Inserted += len(chunk)
		}
		report(len(chunk))
	}

	if !result.Cancelled {
		for _, pending := range plan.updates {
			if ctx.Err() != nil {
				result.Cancelled = true
				break
			}

			if err := c.writer.UpdateTraining(writeCtx, pending.trainingID, pending.fields); err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"row":         pending.rowNumber,
					"training_id": pending.trainingID,
				}).Warn("update training failed")
				result.addFailure(pending.rowNumber, err)
			} else {
				result.Updated++
			}
			report(1)
		}
	}

	if result.Cancelled {
		result.NotAttempted = progress.Total - progress.Processed
	}

	c.logger.WithFields(logrus.Fields{
		"policy":        plan.Policy,
		"inserted":      result.Inserted,
		"updated":       result.Updated,
		"skipped":       result.Skipped,
		"failed":        result.Failed,
		"not_attempted": result.NotAttempted,
		"cancelled":     result.Cancelled,
	}).Info("import commit finished")

	return result
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
