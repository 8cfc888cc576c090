package trainingimport

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/matching"
	"github.com/google/uuid"
)

type SessionState string

const (
	SessionStateOpen       SessionState = "open"
	SessionStateCommitting SessionState = "committing"
	SessionStateCommitted  SessionState = "committed"
)

// Session is one import run: the classified preview, its review state and,
// once started, the commit progress. All access goes through the session lock.
type Session struct {
	ID        string
	FileName  string
	Settings  domain.Settings
	CreatedAt time.Time

	mu       sync.Mutex
	preview  *Preview
	review   *Review
	types    *matching.TypeResolver
	state    SessionState
	progress CommitProgress
	result   *BatchResult
	cancel   context.CancelFunc
}

// Review runs fn against the review workflow unless a commit has started.
func (s *Session) Review(fn func(*Review) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	return fn(s.review)
}

func (s *Session) checkOpen() error {
	switch s.state {
	case SessionStateCommitting:
		return ErrCommitInProgress
	case SessionStateCommitted:
		return ErrSessionCommitted
	default:
		return nil
	}
}

// beginCommit moves the session to committing and snapshots the plan. Only
// one commit may run per session.
func (s *Session) beginCommit(ctx context.Context, policy domain.DuplicatePolicy) (context.Context, CommitPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, CommitPlan{}, err
	}

	plan := PlanCommit(s.preview, policy)
	commitCtx, cancel := context.WithCancel(ctx)
	s.state = SessionStateCommitting
	s.cancel = cancel
	s.progress = CommitProgress{Total: plan.Total()}
	return commitCtx, plan, nil
}

func (s *Session) setProgress(progress CommitProgress) {
	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()
}

func (s *Session) finishCommit(result BatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = SessionStateCommitted
	s.result = &result
}

// CancelCommit sets the cooperative cancellation flag of a running commit.
func (s *Session) CancelCommit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionStateCommitting || s.cancel == nil {
		return ErrNoCommitInProgress
	}
	s.cancel()
	return nil
}

func (s *Session) Output() SessionOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := SessionOutput{
		SessionID: s.ID,
		FileName:  s.FileName,
		State:     s.state,
		Settings:  s.Settings,
		Progress:  s.progress,
		Preview:   NewPreviewOutput(s.preview),
	}
	if s.result != nil {
		result := *s.result
		out.Result = &result
	}
	return out
}

func (s *Session) RejectedRows() []domain.RejectedRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.preview.RejectedRows()
}

func (s *Session) TrainingTypes() []domain.TrainingTypeRef {
	return s.types.Types()
}

// SessionStore keeps import sessions in memory until they are discarded or
// expire.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (s *SessionStore) Create(fileName string, settings domain.Settings, preview *Preview, types *matching.TypeResolver) *Session {
	session := &Session{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Settings:  settings,
		CreatedAt: s.now(),
		preview:   preview,
		review:    NewReview(preview, types),
		types:     types,
		state:     SessionStateOpen,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Delete discards a session, cancelling its commit if one is running.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	_ = session.CancelCommit()
	return nil
}

// Sweep removes expired sessions that are not committing.
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.CreatedAt.After(cutoff) {
			continue
		}
		session.mu.Lock()
		committing := session.state == SessionStateCommitting
		session.mu.Unlock()
		if committing {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps expired sessions until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	for sleepWithContext(ctx, interval) {
		s.Sweep()
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
