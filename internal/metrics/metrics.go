// Package metrics exposes Prometheus collectors for the relay.
//
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spetersoncode/relay/dialogue"
)

// Task outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeCanceled  = "canceled"
)

// Recorder records task and completion metrics.
type Recorder struct {
	tasks              *prometheus.CounterVec
	completionDuration prometheus.Histogram
	completionErrors   *prometheus.CounterVec
	engines            prometheus.Gauge
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_tasks_total",
			Help: "Total tasks finished, by outcome.",
		}, []string{"outcome"}),
		completionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_completion_duration_seconds",
			Help:    "Completion call duration in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}),
		completionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_completion_errors_total",
			Help: "Total failed completion calls, by kind and provider error category.",
		}, []string{"kind", "category"}),
		engines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_engines",
			Help: "Dialogue engines currently held in memory.",
		}),
	}

	for _, c := range []prometheus.Collector{r.tasks, r.completionDuration, r.completionErrors, r.engines} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// TaskFinished counts a task by its final state.
func (r *Recorder) TaskFinished(outcome string) {
	if r == nil {
		return
	}
	r.tasks.WithLabelValues(outcome).Inc()
}

// ObserveCompletion implements dialogue.Observer. Failures without a
// provider category are labeled "none".
func (r *Recorder) ObserveCompletion(elapsed time.Duration, err *dialogue.CompletionError) {
	if r == nil {
		return
	}
	r.completionDuration.Observe(elapsed.Seconds())
	if err == nil {
		return
	}
	category := string(err.Category)
	if category == "" {
		category = "none"
	}
	r.completionErrors.WithLabelValues(string(err.Kind), category).Inc()
}

// SetEngines sets the number of live engines.
func (r *Recorder) SetEngines(n int) {
	if r == nil {
		return
	}
	r.engines.Set(float64(n))
}

var _ dialogue.Observer = (*Recorder)(nil)
