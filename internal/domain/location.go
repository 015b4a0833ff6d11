package domain

import (
	"fmt"
	"strconv"
)

// Period is the closed interval during which a station stood at one location.
type Period struct {
	Start Date
	End   Date
}

// NewPeriod returns the period [start, end].
func NewPeriod(start, end Date) Period {
	return Period{Start: start, End: end}
}

// IsValid reports whether both ends are set and start <= end.
// A period starting at the unknown sentinel is valid.
func (p Period) IsValid() bool {
	if !p.Start.IsSet() || !p.End.IsSet() {
		return false
	}
	return !p.Start.After(p.End)
}

// IsValidAfter reports whether p starts no earlier than prior ends.
func (p Period) IsValidAfter(prior Period) bool {
	return !p.Start.Before(prior.End)
}

// Equal reports whether both ends match.
func (p Period) Equal(other Period) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

func (p Period) String() string {
	return p.Start.String() + " : " + p.End.String()
}

// Coordinate is a decimal-degree position. Either part may be unknown, as with
// upper-air balloon sites that carry no fixed position.
type Coordinate struct {
	Latitude  *float64
	Longitude *float64
}

// NewCoordinate returns a fully known coordinate.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Latitude: &lat, Longitude: &lon}
}

// IsKnown reports whether both latitude and longitude are present.
func (c Coordinate) IsKnown() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Equal compares by value, treating two unknown parts as equal.
func (c Coordinate) Equal(other Coordinate) bool {
	return floatPtrEqual(c.Latitude, other.Latitude) && floatPtrEqual(c.Longitude, other.Longitude)
}

func (c Coordinate) String() string {
	return "(" + formatDegrees(c.Latitude) + ", " + formatDegrees(c.Longitude) + ")"
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatDegrees(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// StationLocation is a station's coordinate for one contiguous period.
// It is immutable once constructed.
type StationLocation struct {
	coordinate Coordinate
	period     Period
}

// NewStationLocation returns the location at c during p.
func NewStationLocation(c Coordinate, p Period) StationLocation {
	return StationLocation{coordinate: c, period: p}
}

// Coordinate returns the position of the station.
func (l StationLocation) Coordinate() Coordinate { return l.coordinate }

// Period returns the interval the station occupied the position.
func (l StationLocation) Period() Period { return l.period }

// IsValidPeriod reports whether the location's own interval is well formed.
func (l StationLocation) IsValidPeriod() bool { return l.period.IsValid() }

// IsValidAfter reports whether l starts no earlier than prior ends.
func (l StationLocation) IsValidAfter(prior StationLocation) bool {
	return l.period.IsValidAfter(prior.period)
}

// Equal compares both the coordinate and the period.
func (l StationLocation) Equal(other StationLocation) bool {
	return l.coordinate.Equal(other.coordinate) && l.period.Equal(other.period)
}

func (l StationLocation) String() string {
	return fmt.Sprintf("%s -> %s", l.period, l.coordinate)
}
