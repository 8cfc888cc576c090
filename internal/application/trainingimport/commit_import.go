package trainingimport

import (
	"context"
	"fmt"
	"time"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/sirupsen/logrus"
)

type CommitImportInput struct {
	SessionID       string
	DuplicatePolicy string
}

type CommitImportOutput struct {
	SessionID       string                 `json:"session_id"`
	RunID           string                 `json:"run_id,omitempty"`
	DuplicatePolicy domain.DuplicatePolicy `json:"duplicate_policy"`
	Result          BatchResult            `json:"result"`
}

type CommitImport interface {
	Execute(ctx context.Context, in CommitImportInput) (CommitImportOutput, error)
}

type commitImport struct {
	sessions  *SessionStore
	committer *Committer
	runs      domain.ImportRunRecorder
	metrics   ImportMetrics
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewCommitImport(sessions *SessionStore, committer *Committer, runs domain.ImportRunRecorder, metrics ImportMetrics, logger logrus.FieldLogger) CommitImport {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &commitImport{
		sessions:  sessions,
		committer: committer,
		runs:      runs,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *commitImport) Execute(ctx context.Context, in CommitImportInput) (CommitImportOutput, error) {
	policy, err := domain.ParseDuplicatePolicy(in.DuplicatePolicy)
	if err != nil {
		return CommitImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidDuplicatePolicy, err)
	}

	session, err := uc.sessions.Get(in.SessionID)
	if err != nil {
		return CommitImportOutput{}, err
	}

	commitCtx, plan, err := session.beginCommit(ctx, policy)
	if err != nil {
		return CommitImportOutput{}, err
	}

	startedAt := uc.now()
	result := uc.committer.Commit(commitCtx, plan, session.setProgress)
	finishedAt := uc.now()
	session.finishCommit(result)

	uc.metrics.ObserveCommit(string(policy), result, finishedAt.Sub(startedAt))

	out := CommitImportOutput{
		SessionID:       session.ID,
		DuplicatePolicy: policy,
		Result:          result,
	}

	if uc.runs != nil {
		runID, err := uc.runs.Record(context.WithoutCancel(ctx), domain.ImportRun{
			SessionID:       session.ID,
			FileName:        session.FileName,
			DuplicatePolicy: policy,
			TotalRows:       plan.Submitted() + result.ErrorRows,
			ErrorRows:       result.ErrorRows,
			InsertedCount:   result.Inserted,
			UpdatedCount:    result.Updated,
			SkippedCount:    result.Skipped,
			FailedCount:     result.Failed,
			Cancelled:       result.Cancelled,
			StartedAt:       startedAt,
			FinishedAt:      finishedAt,
		})
		if err != nil {
			uc.logger.WithError(err).WithField("session_id", session.ID).Error("record import run failed")
		}
		out.RunID = runID
	}

	return out, nil
}
