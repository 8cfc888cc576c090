package trainingimport

import (
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/matching"
)

// SessionQueries exposes read and lifecycle operations on import sessions.
type SessionQueries struct {
	sessions *SessionStore
}

func NewSessionQueries(sessions *SessionStore) *SessionQueries {
	return &SessionQueries{sessions: sessions}
}

func (q *SessionQueries) Get(sessionID string) (SessionOutput, error) {
	session, err := q.sessions.Get(sessionID)
	if err != nil {
		return SessionOutput{}, err
	}
	return session.Output(), nil
}

func (q *SessionQueries) CancelCommit(sessionID string) error {
	session, err := q.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return session.CancelCommit()
}

func (q *SessionQueries) Discard(sessionID string) error {
	return q.sessions.Delete(sessionID)
}

func (q *SessionQueries) RejectedRows(sessionID string) ([]domain.RejectedRow, error) {
	session, err := q.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.RejectedRows(), nil
}

func (q *SessionQueries) SearchTrainingTypes(sessionID, query string, limit int) ([]domain.TrainingTypeRef, error) {
	session, err := q.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return matching.Search(session.TrainingTypes(), query, limit), nil
}
