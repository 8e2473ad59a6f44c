// Package laddermetrics records ladder operation counters and latencies.
package laddermetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LadderMetrics is implemented by every backend the ladder service can report to.
type LadderMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordConflictRetry(ctx context.Context, operation string)
	RecordChallengesExpired(ctx context.Context, n int)
}

type prometheusMetrics struct {
	attempts          *prometheus.CounterVec
	successes         *prometheus.CounterVec
	failures          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	conflictRetries   *prometheus.CounterVec
	challengesExpired prometheus.Counter
}

// NewPrometheus registers the ladder collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (LadderMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ladder",
			Name:      "operation_attempts_total",
			Help:      "Ladder operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ladder",
			Name:      "operation_success_total",
			Help:      "Ladder operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ladder",
			Name:      "operation_failures_total",
			Help:      "Ladder operations that failed with an infrastructure error or panic.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ladder",
			Name:      "operation_duration_seconds",
			Help:      "Ladder operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ladder",
			Name:      "conflict_retries_total",
			Help:      "Transactions retried after a rank conflict.",
		}, []string{"operation"}),
		challengesExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ladder",
			Name:      "challenges_expired_total",
			Help:      "Pending challenges moved to expired by the sweep.",
		}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.conflictRetries, m.challengesExpired} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordConflictRetry(_ context.Context, operation string) {
	m.conflictRetries.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordChallengesExpired(_ context.Context, n int) {
	m.challengesExpired.Add(float64(n))
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func NewNoop() LadderMetrics { return NoOpMetrics{} }

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordConflictRetry(context.Context, string)                            {}
func (NoOpMetrics) RecordChallengesExpired(context.Context, int)                           {}
