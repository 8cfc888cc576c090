package metrics

import (
	"time"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "training_import"

// Collector records preview and commit outcomes as prometheus series.
type Collector struct {
	previewsTotal  prometheus.Counter
	previewRows    *prometheus.CounterVec
	commitsTotal   *prometheus.CounterVec
	commitRows     *prometheus.CounterVec
	commitDuration *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		previewsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_total",
			Help:      "Total number of classified import files.",
		}),
		previewRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_rows_total",
			Help:      "Classified rows by disposition.",
		}, []string{"disposition"}),
		commitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Total number of commit runs.",
		}, []string{"policy", "result"}),
		commitRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commit_rows_total",
			Help:      "Committed rows by outcome.",
		}, []string{"outcome"}),
		commitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "commit_duration_seconds",
			Help:      "Duration of commit runs.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"policy"}),
	}
}

func (c *Collector) ObservePreview(counts app.Counts) {
	c.previewsTotal.Inc()
	c.previewRows.WithLabelValues(string(app.DispositionValid)).Add(float64(counts.Valid))
	c.previewRows.WithLabelValues(string(app.DispositionAutoMatched)).Add(float64(counts.AutoMatched))
	c.previewRows.WithLabelValues(string(app.DispositionSuggestion)).Add(float64(counts.Suggestions))
	c.previewRows.WithLabelValues(string(app.DispositionDuplicate)).Add(float64(counts.Duplicates))
	c.previewRows.WithLabelValues(string(app.DispositionError)).Add(float64(counts.Errors))
}

func (c *Collector) ObserveCommit(policy string, result app.BatchResult, duration time.Duration) {
	status := "completed"
	switch {
	case result.Cancelled:
		status = "cancelled"
	case result.Failed > 0:
		status = "partial"
	}

	c.commitsTotal.WithLabelValues(policy, status).Inc()
	c.commitRows.WithLabelValues("inserted").Add(float64(result.Inserted))
	c.commitRows.WithLabelValues("updated").Add(float64(result.Updated))
	c.commitRows.WithLabelValues("skipped").Add(float64(result.Skipped))
	c.commitRows.WithLabelValues("failed").Add(float64(result.Failed))
	c.commitRows.WithLabelValues("not_attempted").Add(float64(result.NotAttempted))
	c.commitDuration.WithLabelValues(policy).Observe(duration.Seconds())
}
