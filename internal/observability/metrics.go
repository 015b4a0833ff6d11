package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "station_stats"

// Metrics holds the Prometheus counters, histograms, and gauges for one
// station statistics run.
type Metrics struct {
	LinesRead     prometheus.Counter
	LinesSkipped  prometheus.Counter
	LinesRepaired prometheus.Counter
	DatesSwapped  prometheus.Counter

	StationsLoaded  prometheus.Gauge
	LocationsLoaded prometheus.Gauge
	InvalidStations prometheus.Gauge

	PipelineRunning prometheus.Gauge
	StageDuration   *prometheus.HistogramVec // labels: stage={load,collect,report}
	RunDuration     prometheus.Gauge
	LastSuccess     prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Data lines read from the EMSHR Lite file.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_skipped_total",
			Help:      "Data lines skipped because they failed to decode.",
		}),
		LinesRepaired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_repaired_total",
			Help:      "Data lines that had mis-encoded bytes replaced.",
		}),
		DatesSwapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dates_swapped_total",
			Help:      "Data lines whose begin date was after their end date.",
		}),
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_loaded",
			Help:      "Stations loaded in the last run.",
		}),
		LocationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locations_loaded",
			Help:      "Station locations loaded in the last run.",
		}),
		InvalidStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "invalid_stations",
			Help:      "Stations whose location periods overlap or are inverted.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while the pipeline is running, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last complete run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	reg.MustRegister(
		m.LinesRead,
		m.LinesSkipped,
		m.LinesRepaired,
		m.DatesSwapped,
		m.StationsLoaded,
		m.LocationsLoaded,
		m.InvalidStations,
		m.PipelineRunning,
		m.StageDuration,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format read by the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
