// Command stationstats loads an EMSHR Lite station history file, computes
// summary statistics over every station and writes them as a text report.
//
// Usage:
//
//	go run ./cmd/stationstats -input emshr_lite.txt -output report.txt
//
// Settings are read from the environment (and a .env file when present);
// flags override the file paths.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/station-stats/internal/config"
	"github.com/couchcryptid/station-stats/internal/emshr"
	"github.com/couchcryptid/station-stats/internal/observability"
	"github.com/couchcryptid/station-stats/internal/pipeline"
	"github.com/couchcryptid/station-stats/internal/stats"
	"github.com/couchcryptid/station-stats/internal/world"
)

func main() {
	input := flag.String("input", "", "EMSHR Lite file to read (overrides INPUT_FILE_PATH)")
	output := flag.String("output", "", "report file to write, - for stdout (overrides OUTPUT_FILE_PATH)")
	flag.Parse()

	os.Exit(run(*input, *output))
}

func run(input, output string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if input != "" {
		cfg.InputFilePath = input
	}
	if output != "" {
		cfg.OutputFilePath = output
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		return 1
	}

	logger, closer := observability.NewLogger(cfg)
	defer closer.Close()
	logger = logger.With("run_id", uuid.NewString())

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	loader := emshr.NewLoader(cfg.InputFilePath, logger, metrics)
	collector := stats.NewCollector(world.Default(), logger)
	reporter := stats.NewReporter(cfg.OutputFilePath, os.Stdout)

	p := pipeline.New(loader, collector, reporter, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("pipeline error", "error", runErr, "input", cfg.InputFilePath)
	}

	if cfg.MetricsFile != "" {
		if err := observability.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Error("write metrics file", "error", err, "path", cfg.MetricsFile)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
