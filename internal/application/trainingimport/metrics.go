package trainingimport

import "time"

type ImportMetrics interface {
	ObservePreview(counts Counts)
	ObserveCommit(policy string, result BatchResult, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObservePreview(Counts) {}

func (noopMetrics) ObserveCommit(string, BatchResult, time.Duration) {}
