package trainingimport

import (
	"context"
	"fmt"
)

type ReviewAction string

const (
	ReviewActionApprove    ReviewAction = "approve"
	ReviewActionReject     ReviewAction = "reject"
	ReviewActionApproveAll ReviewAction = "approve_all"
	ReviewActionRejectAll  ReviewAction = "reject_all"
	ReviewActionOverride   ReviewAction = "override"
)

type ReviewImportInput struct {
	SessionID      string
	Action         ReviewAction
	RowNumber      int
	TrainingTypeID string
}

type ReviewImport interface {
	Execute(ctx context.Context, in ReviewImportInput) (SessionOutput, error)
}

type reviewImport struct {
	sessions *SessionStore
}

func NewReviewImport(sessions *SessionStore) ReviewImport {
	return &reviewImport{sessions: sessions}
}

func (uc *reviewImport) Execute(ctx context.Context, in ReviewImportInput) (SessionOutput, error) {
	session, err := uc.sessions.Get(in.SessionID)
	if err != nil {
		return SessionOutput{}, err
	}

	err = session.Review(func(r *Review) error {
		switch in.Action {
		case ReviewActionApprove:
			return r.Approve(in.RowNumber)
		case ReviewActionReject:
			return r.Reject(in.RowNumber)
		case ReviewActionApproveAll:
			r.ApproveAll()
			return nil
		case ReviewActionRejectAll:
			r.RejectAll()
			return nil
		case ReviewActionOverride:
			return r.Override(in.RowNumber, in.TrainingTypeID)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidReviewAction, in.Action)
		}
	})
	if err != nil {
		return SessionOutput{}, err
	}

	return session.Output(), nil
}
