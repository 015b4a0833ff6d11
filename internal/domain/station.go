package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Identifiers holds the administrative ids a station is known by besides its NCDC id.
// Empty strings mean the source had no value.
type Identifiers struct {
	COOP  string
	WBAN  string
	ICAO  string
	FAA   string
	NWSLI string
	WMO   string
	TRANS string
	GHCND string
}

// merge copies every non-empty id in other over i.
func (i *Identifiers) merge(other Identifiers) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&i.COOP, other.COOP)
	set(&i.WBAN, other.WBAN)
	set(&i.ICAO, other.ICAO)
	set(&i.FAA, other.FAA)
	set(&i.NWSLI, other.NWSLI)
	set(&i.WMO, other.WMO)
	set(&i.TRANS, other.TRANS)
	set(&i.GHCND, other.GHCND)
}

// StationMetadata is one weather station's full history as read from an
// EMSHR Lite file. Identity is the NCDC id; see SameStation.
type StationMetadata struct {
	NCDC        int64
	Name        string
	CountryCode string
	Identifiers Identifiers

	locations []StationLocation
	networks  map[string]struct{}
}

// NewStationMetadata returns an empty record for the station with the given id.
func NewStationMetadata(ncdc int64) StationMetadata {
	return StationMetadata{NCDC: ncdc}
}

// Clone returns a deep copy of m that can be reordered or mutated freely.
func (m *StationMetadata) Clone() StationMetadata {
	c := *m
	c.locations = slices.Clone(m.locations)
	if m.networks != nil {
		c.networks = make(map[string]struct{}, len(m.networks))
		for tag := range m.networks {
			c.networks[tag] = struct{}{}
		}
	}
	return c
}

// SameStation reports whether m and other describe the same station.
// Only the NCDC id takes part.
func (m *StationMetadata) SameStation(other *StationMetadata) bool {
	return other != nil && m.NCDC == other.NCDC
}

// Equal compares the full contents of both records.
func (m *StationMetadata) Equal(other *StationMetadata) bool {
	if other == nil {
		return false
	}
	if m.NCDC != other.NCDC || m.Name != other.Name || m.CountryCode != other.CountryCode || m.Identifiers != other.Identifiers {
		return false
	}
	if !slices.Equal(m.Networks(), other.Networks()) {
		return false
	}
	return slices.EqualFunc(m.locations, other.locations, StationLocation.Equal)
}

// SetName keeps the latest non-empty name.
func (m *StationMetadata) SetName(name string) {
	if name != "" {
		m.Name = name
	}
}

// SetCountryCode keeps the latest non-empty country code.
func (m *StationMetadata) SetCountryCode(cc string) {
	if cc != "" {
		m.CountryCode = cc
	}
}

// MergeIdentifiers keeps the latest non-empty value of every identifier.
func (m *StationMetadata) MergeIdentifiers(ids Identifiers) {
	m.Identifiers.merge(ids)
}

// AddNetworks unions tags into the station's network affiliations.
// Blank tags are ignored.
func (m *StationMetadata) AddNetworks(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if m.networks == nil {
			m.networks = make(map[string]struct{})
		}
		m.networks[tag] = struct{}{}
	}
}

// Networks returns the station's network tags in sorted order.
func (m *StationMetadata) Networks() []string {
	tags := make([]string, 0, len(m.networks))
	for tag := range m.networks {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// AddLocation appends loc to the history. When loc covers exactly the same
// period as the last entry it replaces that entry instead, so a corrected
// record re-emitted by the source wins over the original.
func (m *StationMetadata) AddLocation(loc StationLocation) {
	if n := len(m.locations); n > 0 && m.locations[n-1].period.Equal(loc.period) {
		m.locations[n-1] = loc
		return
	}
	m.locations = append(m.locations, loc)
}

// Locations returns a copy of the location history in insertion order.
func (m *StationMetadata) Locations() []StationLocation {
	return slices.Clone(m.locations)
}

// LocationCount returns the number of locations in the history.
func (m *StationMetadata) LocationCount() int {
	return len(m.locations)
}

// IsValidPeriods walks the history checking that every period is well formed
// and starts no earlier than its predecessor ends. The first entry is checked
// against a period at the unknown-start sentinel. An empty history is valid.
func (m *StationMetadata) IsValidPeriods() bool {
	prior := NewStationLocation(Coordinate{}, NewPeriod(UnknownDate(), UnknownDate()))
	for _, loc := range m.locations {
		if !loc.IsValidPeriod() || !loc.IsValidAfter(prior) {
			return false
		}
		prior = loc
	}
	return true
}

// EarliestLocation returns the first location with a known start. The history
// is assumed to be sorted by start date.
func (m *StationMetadata) EarliestLocation() (StationLocation, bool) {
	for _, loc := range m.locations {
		if !loc.period.Start.IsUnknown() {
			return loc, true
		}
	}
	return StationLocation{}, false
}

// IsRetiredStation reports whether the station has stopped operating: true
// unless the latest location is open ended. An empty history counts as retired.
func (m *StationMetadata) IsRetiredStation() bool {
	n := len(m.locations)
	if n == 0 {
		return true
	}
	return !m.locations[n-1].period.End.IsOpenEnded()
}

// SortLocationsByStartDate orders the history by period start, keeping the
// relative order of locations that start on the same day.
func (m *StationMetadata) SortLocationsByStartDate() {
	slices.SortStableFunc(m.locations, func(a, b StationLocation) int {
		return a.period.Start.Time().Compare(b.period.Start.Time())
	})
}

func (m *StationMetadata) String() string {
	return "NCDC: " + strconv.FormatInt(m.NCDC, 10)
}

// Dump renders the station header followed by one indented line per location.
func (m *StationMetadata) Dump() string {
	var b strings.Builder
	b.WriteString(m.String())
	b.WriteByte('\n')
	for _, loc := range m.locations {
		b.WriteString("    ")
		b.WriteString(loc.String())
		b.WriteByte('\n')
	}
	return b.String()
}
