package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/observability"
	"github.com/couchcryptid/station-stats/internal/pipeline"
	"github.com/couchcryptid/station-stats/internal/stats"
)

// --- mocks ---

type mockLoader struct {
	stations []domain.StationMetadata
	err      error
	clock    *clockwork.FakeClock
	elapsed  time.Duration
}

func (m *mockLoader) Load(_ context.Context) ([]domain.StationMetadata, error) {
	if m.clock != nil {
		m.clock.Advance(m.elapsed)
	}
	return m.stations, m.err
}

type mockCollector struct {
	got []domain.StationMetadata
}

func (m *mockCollector) Collect(stations []domain.StationMetadata) stats.Statistics {
	m.got = stations
	return stats.Statistics{stats.StationCount: "1"}
}

type mockReporter struct {
	reported stats.Statistics
	err      error
}

func (m *mockReporter) Report(s stats.Statistics) error {
	m.reported = s
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freezeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() {
		domain.SetClock(nil)
	})
	return fake
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	fake := freezeClock(t)
	station := domain.NewStationMetadata(10000001)

	ldr := &mockLoader{stations: []domain.StationMetadata{station}, clock: fake, elapsed: 2 * time.Second}
	col := &mockCollector{}
	rep := &mockReporter{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ldr, col, rep, discardLogger(), metrics)

	got, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, col.got, 1)
	assert.Equal(t, int64(10000001), col.got[0].NCDC)
	assert.Equal(t, got, rep.reported)
	assert.Equal(t, "1", got[stats.StationCount])
	assert.Equal(t, "2024-04-26T15:10:02Z", got[stats.GeneratedAt])

	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.RunDuration), 0.0001)
	assert.InDelta(t, float64(fake.Now().Unix()), testutil.ToFloat64(metrics.LastSuccess), 0.0001)
	assert.Zero(t, testutil.ToFloat64(metrics.PipelineRunning))
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.StageDuration))
}

func TestPipeline_Run_LoadError(t *testing.T) {
	ldr := &mockLoader{err: errors.New("open emshr file: no such file")}
	col := &mockCollector{}
	rep := &mockReporter{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ldr, col, rep, discardLogger(), metrics)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load stations")
	assert.Nil(t, col.got)
	assert.Nil(t, rep.reported)
	assert.Zero(t, testutil.ToFloat64(metrics.LastSuccess))
}

func TestPipeline_Run_ReportError(t *testing.T) {
	reportErr := errors.New("disk full")
	ldr := &mockLoader{}
	rep := &mockReporter{err: reportErr}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ldr, &mockCollector{}, rep, discardLogger(), metrics)

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, reportErr)
	assert.Zero(t, testutil.ToFloat64(metrics.LastSuccess))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	col := &mockCollector{}
	rep := &mockReporter{}

	p := pipeline.New(&mockLoader{}, col, rep, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rep.reported)
}
