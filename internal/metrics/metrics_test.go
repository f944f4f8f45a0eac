//go:build unit

package metrics_test

import (
	"context"
	"testing"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecorder_JobSettled(t *testing.T) {
	reader, mp := setupTestMeter()
	rec := metrics.NewRecorderWithMeter(mp.Meter("test"))

	rec.JobSettled(context.Background(), job.TypeUserInsert, metrics.OutcomeCompleted, 150*time.Millisecond)
	rec.JobSettled(context.Background(), job.TypeUserInsert, metrics.OutcomeRetried, 50*time.Millisecond)

	rm := collect(t, reader)

	attempts := findMetric(rm, "queue.job.attempts")
	require.NotNil(t, attempts)
	sum, ok := attempts.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2)

	outcomes := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, ok := dp.Attributes.Value("outcome")
		require.True(t, ok)
		outcomes[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"completed": 1, "retried": 1}, outcomes)

	duration := findMetric(rm, "queue.job.duration")
	require.NotNil(t, duration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestRecorder_CountersSkipZero(t *testing.T) {
	reader, mp := setupTestMeter()
	rec := metrics.NewRecorderWithMeter(mp.Meter("test"))

	rec.JobEnqueued(context.Background(), job.TypeMovieInsert)
	rec.LeasesReaped(context.Background(), 0)
	rec.JobsCleaned(context.Background(), 3)

	rm := collect(t, reader)

	assert.NotNil(t, findMetric(rm, "queue.job.enqueued"))
	if reaped := findMetric(rm, "queue.lease.reaped"); reaped != nil {
		assert.Empty(t, reaped.Data.(metricdata.Sum[int64]).DataPoints)
	}

	cleaned := findMetric(rm, "queue.job.cleaned")
	require.NotNil(t, cleaned)
	sum := cleaned.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}
