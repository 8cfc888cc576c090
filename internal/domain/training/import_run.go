package training

import (
	"fmt"
	"strings"
	"time"
)

type DuplicatePolicy string

const (
	DuplicatePolicySkip      DuplicatePolicy = "skip"
	DuplicatePolicyOverwrite DuplicatePolicy = "overwrite"
)

func ParseDuplicatePolicy(raw string) (DuplicatePolicy, error) {
	switch policy := DuplicatePolicy(strings.ToLower(strings.TrimSpace(raw))); policy {
	case DuplicatePolicySkip, DuplicatePolicyOverwrite:
		return policy, nil
	case "":
		return DuplicatePolicySkip, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", raw)
	}
}

// ImportRun is the persisted summary of one finished commit.
type ImportRun struct {
	SessionID       string
	FileName        string
	DuplicatePolicy DuplicatePolicy
	TotalRows       int
	ErrorRows       int
	InsertedCount   int
	UpdatedCount    int
	SkippedCount    int
	FailedCount     int
	Cancelled       bool
	StartedAt       time.Time
	FinishedAt      time.Time
}
