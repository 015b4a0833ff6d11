package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/observability"
	"github.com/couchcryptid/station-stats/internal/stats"
)

// StationLoader reads every station from the source.
type StationLoader interface {
	Load(ctx context.Context) ([]domain.StationMetadata, error)
}

// StatisticsCollector computes statistics over loaded stations.
type StatisticsCollector interface {
	Collect(stations []domain.StationMetadata) stats.Statistics
}

// ReportWriter writes the computed statistics to the destination.
type ReportWriter interface {
	Report(s stats.Statistics) error
}

// Pipeline orchestrates one load-collect-report run.
type Pipeline struct {
	loader    StationLoader
	collector StatisticsCollector
	reporter  ReportWriter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(l StationLoader, c StatisticsCollector, r ReportWriter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    l,
		collector: c,
		reporter:  r,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run loads the stations, computes the statistics and writes the report.
// The returned Statistics are those handed to the reporter.
func (p *Pipeline) Run(ctx context.Context) (stats.Statistics, error) {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	clock := domain.Clock()
	start := clock.Now()

	loadStart := clock.Now()
	stations, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	p.observeStage("load", clock.Since(loadStart), "stations", len(stations))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collectStart := clock.Now()
	s := p.collector.Collect(stations)
	s[stats.GeneratedAt] = domain.Now().Format(time.RFC3339)
	p.observeStage("collect", clock.Since(collectStart), "statistics", len(s))

	reportStart := clock.Now()
	if err := p.reporter.Report(s); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	p.observeStage("report", clock.Since(reportStart))

	total := clock.Since(start)
	p.metrics.RunDuration.Set(total.Seconds())
	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))
	p.logger.Info("pipeline finished", "duration", total)
	return s, nil
}

func (p *Pipeline) observeStage(stage string, d time.Duration, attrs ...any) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	p.logger.Info("stage complete", append([]any{"stage", stage, "duration", d}, attrs...)...)
}
