// Command emshrcheck performs integrity checks on an EMSHR Lite file before
// it is fed to stationstats. It verifies the column layout, that every data
// line decodes, and that each station's location periods are ordered and do
// not overlap.
//
// Usage:
//
//	go run ./cmd/emshrcheck -input emshr_lite.txt
//	go run ./cmd/emshrcheck -input internal/emshr/testdata/emshr_lite_sample.txt -expect-stations 2
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/emshr"
	"github.com/couchcryptid/station-stats/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the EMSHR Lite file")
	expectStations := flag.Int("expect-stations", -1, "expected station count, -1 to skip")
	expectLocations := flag.Int("expect-locations", -1, "expected location count, -1 to skip")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *input, *expectStations, *expectLocations); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, path string, expectStations, expectLocations int) int {
	fmt.Fprintln(out, "=== EMSHR Lite Integrity Validation ===")
	fmt.Fprintln(out)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 1
	}
	lines := splitLines(data)

	layoutPhase, layout := validateLayout(lines)
	phases := []*phase{layoutPhase}

	var stations []domain.StationMetadata
	if layout != nil {
		phases = append(phases, validateLines(layout, lines[2:]))

		loadPhase, loaded := validatePeriods(data)
		phases = append(phases, loadPhase)
		stations = loaded

		phases = append(phases, validateCounts(stations, expectStations, expectLocations))
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d data lines, %d stations, %d locations\n",
		max(len(lines)-2, 0), len(stations), countLocations(stations))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// splitLines splits data into lines with their CR CR LF endings removed.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for _, raw := range bytes.SplitAfter(data, []byte{'\n'}) {
		if len(raw) == 0 {
			continue
		}
		lines = append(lines, emshr.StripEndOfLine(raw))
	}
	return lines
}

func countLocations(stations []domain.StationMetadata) int {
	n := 0
	for i := range stations {
		n += stations[i].LocationCount()
	}
	return n
}

// ── Phase 1: Layout ──
// The heading and separator lines must agree and name every required column.

func validateLayout(lines [][]byte) (*phase, *emshr.ColumnLayout) {
	p := &phase{name: "Phase 1: Column Layout"}
	if len(lines) < 2 {
		p.errorf("file has %d lines, need a heading and a separator line", len(lines))
		return p, nil
	}

	layout, err := emshr.NewColumnLayout(emshr.SelectedFields, string(lines[0]), string(lines[1]))
	if err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	if err := layout.Require(emshr.RequiredColumns...); err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	return p, layout
}

// ── Phase 2: Line Decode ──
// Every data line must repair, decode and parse.

func validateLines(layout *emshr.ColumnLayout, data [][]byte) *phase {
	p := &phase{name: "Phase 2: Line Decode"}
	for i, line := range data {
		if err := emshr.CheckLine(layout, line); err != nil {
			p.errorf("line %d: %v", i+2, err)
		}
	}
	return p
}

// ── Phase 3: Location Periods ──
// Every station's history must be well formed once loaded.

func validatePeriods(data []byte) (*phase, []domain.StationMetadata) {
	p := &phase{name: "Phase 3: Location Periods"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := emshr.NewLoader("", logger, observability.NewMetricsForTesting())
	stations, err := loader.Read(context.Background(), bytes.NewReader(data))
	if err != nil {
		p.errorf("load: %v", err)
		return p, nil
	}

	for i := range stations {
		if !stations[i].IsValidPeriods() {
			p.errorf("%s %s:\n%s", stations[i].String(), stations[i].Name, stations[i].Dump())
		}
	}
	return p, stations
}

// ── Phase 4: Counts ──

func validateCounts(stations []domain.StationMetadata, expectStations, expectLocations int) *phase {
	p := &phase{name: "Phase 4: Expected Counts"}
	if expectStations >= 0 && len(stations) != expectStations {
		p.errorf("stations: expected %d, got %d", expectStations, len(stations))
	}
	if n := countLocations(stations); expectLocations >= 0 && n != expectLocations {
		p.errorf("locations: expected %d, got %d", expectLocations, n)
	}
	return p
}
