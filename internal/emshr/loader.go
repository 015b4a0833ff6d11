package emshr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/observability"
)

// SelectedFields are the columns the loader decodes from every data line.
var SelectedFields = []string{
	ColumnNCDC, ColumnBeginDate, ColumnEndDate,
	ColumnCOOP, ColumnWBAN, ColumnICAO, ColumnFAA, ColumnNWSLI, ColumnWMO, ColumnTRANS, ColumnGHCND,
	ColumnStationName, ColumnCountryCode, ColumnLatitude, ColumnLongitude, ColumnType,
}

// RequiredColumns must be present in the heading line for the file to load.
// The remaining selected columns are optional and decode as empty when absent.
var RequiredColumns = []string{
	ColumnNCDC, ColumnBeginDate, ColumnEndDate, ColumnStationName, ColumnLatitude, ColumnLongitude,
}

// LineError is a recoverable failure to decode one data line.
type LineError struct {
	Index int
	Line  []byte
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Index, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

type loadState int

const (
	awaitingHeader loadState = iota
	awaitingSeparator
	parsingData
)

// Loader reads an EMSHR Lite file and folds its lines into one
// StationMetadata per station.
type Loader struct {
	path    string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader for the file at path.
func NewLoader(path string, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{path: path, logger: logger, metrics: metrics}
}

// Load opens the configured file and reads it with Read.
func (l *Loader) Load(ctx context.Context) ([]domain.StationMetadata, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open emshr file: %w", err)
	}
	defer f.Close()

	return l.Read(ctx, f)
}

// Read parses an EMSHR Lite stream. Line 0 is the heading line and line 1 the
// separator line; together they fix the column layout. Every later line is a
// data line. A data line that fails to decode is logged and skipped without
// touching the station being accumulated. Layout errors and read errors abort
// the load.
func (l *Loader) Read(ctx context.Context, r io.Reader) ([]domain.StationMetadata, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		state   = awaitingHeader
		heading string
		layout  *ColumnLayout
		acc     accumulator
		index   int
		skipped int
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read emshr line %d: %w", index, readErr)
		}
		if len(raw) == 0 && readErr != nil {
			break
		}
		line := StripEndOfLine(raw)

		switch state {
		case awaitingHeader:
			heading = string(line)
			state = awaitingSeparator
		case awaitingSeparator:
			var err error
			layout, err = l.buildLayout(heading, string(line))
			if err != nil {
				return nil, err
			}
			state = parsingData
		case parsingData:
			l.metrics.LinesRead.Inc()
			if err := l.parseDataLine(&acc, layout, index, line); err != nil {
				skipped++
				l.metrics.LinesSkipped.Inc()
				l.logger.Warn("skipping bad emshr line",
					"line_index", index,
					"line", fmt.Sprintf("%q", raw),
					"error", err,
				)
			}
		}

		index++
		if readErr != nil {
			break
		}
	}

	stations := acc.finish()
	l.report(stations, index, skipped)
	return stations, nil
}

func (l *Loader) buildLayout(heading, separator string) (*ColumnLayout, error) {
	layout, err := NewColumnLayout(SelectedFields, heading, separator)
	if err != nil {
		return nil, fmt.Errorf("build column layout: %w", err)
	}
	if err := layout.Require(RequiredColumns...); err != nil {
		return nil, fmt.Errorf("build column layout: %w", err)
	}
	l.logger.Debug("column layout built",
		"line_length", layout.LineLength(),
		"line_format", layout.LineFormat(),
	)
	return layout, nil
}

// parseDataLine decodes one line completely before applying it, so a failure
// leaves the accumulator unchanged.
func (l *Loader) parseDataLine(acc *accumulator, layout *ColumnLayout, index int, line []byte) error {
	rec, repairs, err := decodeLine(layout, line)
	if err != nil {
		return &LineError{Index: index, Line: line, Err: err}
	}
	if repairs > 0 {
		l.metrics.LinesRepaired.Inc()
	}
	if rec.swapped {
		l.metrics.DatesSwapped.Inc()
		l.logger.Debug("swapped inverted begin and end dates", "ncdc", rec.ncdc, "line_index", index)
	}

	rec.apply(acc.station(rec.ncdc))
	return nil
}

// CheckLine reports whether a data line, stripped of its line ending,
// decodes against layout.
func CheckLine(layout *ColumnLayout, line []byte) error {
	_, _, err := decodeLine(layout, line)
	return err
}

// decodeLine repairs, truncates and decodes line. Bytes past the layout's
// line length are padding and ignored.
func decodeLine(layout *ColumnLayout, line []byte) (record, int, error) {
	repaired, n, err := RepairLine(line)
	if err != nil {
		return record{}, 0, err
	}
	if len(repaired) > layout.LineLength() {
		repaired = repaired[:layout.LineLength()]
	}

	fields, err := layout.ParseLine(repaired)
	if err != nil {
		return record{}, n, err
	}
	rec, err := extractRecord(fields)
	if err != nil {
		return record{}, n, err
	}
	return rec, n, nil
}

func (l *Loader) report(stations []domain.StationMetadata, lines, skipped int) {
	locations := 0
	invalid := 0
	for i := range stations {
		locations += stations[i].LocationCount()
		if !stations[i].IsValidPeriods() {
			invalid++
			l.logger.Debug("station has invalid location periods", "ncdc", stations[i].NCDC, "dump", stations[i].Dump())
		}
	}

	l.metrics.StationsLoaded.Set(float64(len(stations)))
	l.metrics.LocationsLoaded.Set(float64(locations))
	l.metrics.InvalidStations.Set(float64(invalid))

	if invalid > 0 {
		l.logger.Warn("stations with invalid location periods", "count", invalid)
	}
	l.logger.Info("emshr file loaded",
		"lines", lines,
		"skipped_lines", skipped,
		"stations", len(stations),
		"locations", locations,
	)
}

// StripEndOfLine removes a trailing linefeed and then up to two carriage
// returns, the CR CR LF ending used by EMSHR Lite files.
func StripEndOfLine(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	for range 2 {
		line = bytes.TrimSuffix(line, []byte{'\r'})
	}
	return line
}

// record is the decoded content of one data line.
type record struct {
	ncdc        int64
	name        string
	countryCode string
	identifiers domain.Identifiers
	networks    []string
	location    domain.StationLocation
	swapped     bool
}

func extractRecord(f Fields) (record, error) {
	ncdc, err := strconv.ParseInt(f.Get(ColumnNCDC), 10, 64)
	if err != nil {
		return record{}, fmt.Errorf("parse %s: %w", ColumnNCDC, err)
	}

	begin, err := domain.ParseDate(f.Get(ColumnBeginDate))
	if err != nil {
		return record{}, fmt.Errorf("parse %s: %w", ColumnBeginDate, err)
	}
	end, err := domain.ParseDate(f.Get(ColumnEndDate))
	if err != nil {
		return record{}, fmt.Errorf("parse %s: %w", ColumnEndDate, err)
	}
	swapped := false
	if begin.After(end) {
		begin, end = end, begin
		swapped = true
	}

	lat, err := parseDegrees(f.Get(ColumnLatitude))
	if err != nil {
		return record{}, fmt.Errorf("parse %s: %w", ColumnLatitude, err)
	}
	lon, err := parseDegrees(f.Get(ColumnLongitude))
	if err != nil {
		return record{}, fmt.Errorf("parse %s: %w", ColumnLongitude, err)
	}

	return record{
		ncdc:        ncdc,
		name:        f.Get(ColumnStationName),
		countryCode: f.Get(ColumnCountryCode),
		identifiers: domain.Identifiers{
			COOP:  f.Get(ColumnCOOP),
			WBAN:  f.Get(ColumnWBAN),
			ICAO:  f.Get(ColumnICAO),
			FAA:   f.Get(ColumnFAA),
			NWSLI: f.Get(ColumnNWSLI),
			WMO:   f.Get(ColumnWMO),
			TRANS: f.Get(ColumnTRANS),
			GHCND: f.Get(ColumnGHCND),
		},
		networks: strings.Split(f.Get(ColumnType), ","),
		location: domain.NewStationLocation(
			domain.Coordinate{Latitude: lat, Longitude: lon},
			domain.NewPeriod(begin, end),
		),
		swapped: swapped,
	}, nil
}

// parseDegrees returns nil for a blank value.
func parseDegrees(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r record) apply(m *domain.StationMetadata) {
	m.SetName(r.name)
	m.SetCountryCode(r.countryCode)
	m.MergeIdentifiers(r.identifiers)
	m.AddNetworks(r.networks...)
	m.AddLocation(r.location)
}

// accumulator owns the station currently being built and the stations
// already finished.
type accumulator struct {
	current  domain.StationMetadata
	active   bool
	finished []domain.StationMetadata
}

// station returns the record for ncdc, finishing the current record first
// when the id changes.
func (a *accumulator) station(ncdc int64) *domain.StationMetadata {
	if a.active && a.current.NCDC == ncdc {
		return &a.current
	}
	a.flush()
	a.current = domain.NewStationMetadata(ncdc)
	a.active = true
	return &a.current
}

func (a *accumulator) flush() {
	if a.active {
		a.finished = append(a.finished, a.current)
		a.active = false
	}
}

// finish flushes the last record and returns every station in file order.
func (a *accumulator) finish() []domain.StationMetadata {
	a.flush()
	return a.finished
}
