package trainingimport

import "errors"

var (
	ErrEmptyImport            = errors.New("import contains no rows")
	ErrLoadCatalogue          = errors.New("failed to load reference catalogue")
	ErrSessionNotFound        = errors.New("import session not found")
	ErrRowNotFound            = errors.New("row not found")
	ErrRowNotSuggestion       = errors.New("row is not a suggestion")
	ErrUnknownTrainingType    = errors.New("unknown training type")
	ErrInvalidReviewAction    = errors.New("invalid review action")
	ErrInvalidDuplicatePolicy = errors.New("invalid duplicate policy")
	ErrCommitInProgress       = errors.New("commit already in progress")
	ErrSessionCommitted       = errors.New("import session already committed")
	ErrNoCommitInProgress     = errors.New("no commit in progress")
)
