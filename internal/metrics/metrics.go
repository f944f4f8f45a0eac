// Package metrics records queue activity through the OpenTelemetry metric
// API. Without a configured MeterProvider every instrument is a noop.
package metrics

import (
	"context"
	"time"

	"gin-jobqueue/internal/domain/job"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "gin-jobqueue/queue"

// Outcome of one processing attempt.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeRetried   Outcome = "retried"
	OutcomeFailed    Outcome = "failed"
	// The attempt was rejected before any bookkeeping (job gone or no longer ours).
	OutcomeSkipped Outcome = "skipped"
)

type Recorder interface {
	JobEnqueued(ctx context.Context, jobType job.Type)
	JobSettled(ctx context.Context, jobType job.Type, outcome Outcome, elapsed time.Duration)
	LeasesReaped(ctx context.Context, n int)
	JobsCleaned(ctx context.Context, n int64)
}

type otelRecorder struct {
	enqueued  metric.Int64Counter
	attempts  metric.Int64Counter
	duration  metric.Float64Histogram
	reaped    metric.Int64Counter
	cleanedUp metric.Int64Counter
}

// NewRecorder uses the global MeterProvider.
func NewRecorder() Recorder {
	return NewRecorderWithMeter(otel.Meter(meterName))
}

// NewRecorderWithMeter allows injecting a specific MeterProvider in tests.
// Instrument creation errors fall back to noop instruments per the OTel API.
func NewRecorderWithMeter(meter metric.Meter) Recorder {
	enqueued, _ := meter.Int64Counter(
		"queue.job.enqueued",
		metric.WithDescription("Jobs accepted by Enqueue"),
		metric.WithUnit("{job}"),
	)
	attempts, _ := meter.Int64Counter(
		"queue.job.attempts",
		metric.WithDescription("Processing attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	duration, _ := meter.Float64Histogram(
		"queue.job.duration",
		metric.WithDescription("Duration of processing attempts in seconds"),
		metric.WithUnit("s"),
	)
	reaped, _ := meter.Int64Counter(
		"queue.lease.reaped",
		metric.WithDescription("Expired leases returned to retry bookkeeping"),
		metric.WithUnit("{job}"),
	)
	cleanedUp, _ := meter.Int64Counter(
		"queue.job.cleaned",
		metric.WithDescription("Completed jobs removed by retention cleanup"),
		metric.WithUnit("{job}"),
	)

	return &otelRecorder{
		enqueued:  enqueued,
		attempts:  attempts,
		duration:  duration,
		reaped:    reaped,
		cleanedUp: cleanedUp,
	}
}

func (r *otelRecorder) JobEnqueued(ctx context.Context, jobType job.Type) {
	r.enqueued.Add(ctx, 1, metric.WithAttributes(attribute.String("job_type", string(jobType))))
}

func (r *otelRecorder) JobSettled(ctx context.Context, jobType job.Type, outcome Outcome, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("job_type", string(jobType)),
		attribute.String("outcome", string(outcome)),
	)
	r.attempts.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (r *otelRecorder) LeasesReaped(ctx context.Context, n int) {
	if n > 0 {
		r.reaped.Add(ctx, int64(n))
	}
}

func (r *otelRecorder) JobsCleaned(ctx context.Context, n int64) {
	if n > 0 {
		r.cleanedUp.Add(ctx, n)
	}
}

type noopRecorder struct{}

func NewNoop() Recorder { return noopRecorder{} }

func (noopRecorder) JobEnqueued(context.Context, job.Type)                        {}
func (noopRecorder) JobSettled(context.Context, job.Type, Outcome, time.Duration) {}
func (noopRecorder) LeasesReaped(context.Context, int)                            {}
func (noopRecorder) JobsCleaned(context.Context, int64)                           {}
