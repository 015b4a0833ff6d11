package stats

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/world"
)

const unknownContinent = "Unknown"

// Collector computes Statistics over a list of stations.
type Collector struct {
	world  *world.World
	logger *slog.Logger
}

// NewCollector creates a Collector that resolves country codes against w.
func NewCollector(w *world.World, logger *slog.Logger) *Collector {
	return &Collector{world: w, logger: logger}
}

// Collect computes every statistic. Stations are read, never modified.
func (c *Collector) Collect(stations []domain.StationMetadata) Statistics {
	s := Statistics{
		StationCount:        strconv.Itoa(len(stations)),
		LocationCount:       strconv.Itoa(TotalLocations(stations)),
		ValidPeriodCount:    strconv.Itoa(c.validPeriodCount(stations)),
		RetiredStationCount: strconv.Itoa(RetiredStations(stations)),
		AvailableNetworks:   strings.Join(Networks(stations), ", "),
		CountryCount:        strconv.Itoa(len(CountryCodes(stations))),
	}

	if earliest, loc, ok := Earliest(stations); ok {
		s[EarliestStation] = fmt.Sprintf("%s %s (%s)", earliest.String(), earliest.Name, loc.Period().Start)
	}
	if byContinent := c.stationsByContinent(stations); byContinent != "" {
		s[StationsByContinent] = byContinent
	}
	return s
}

// validPeriodCount counts stations whose history passes IsValidPeriods and
// logs the history of every station that fails.
func (c *Collector) validPeriodCount(stations []domain.StationMetadata) int {
	valid := 0
	for i := range stations {
		if stations[i].IsValidPeriods() {
			valid++
			continue
		}
		c.logger.Debug("invalid location periods", "ncdc", stations[i].NCDC, "dump", stations[i].Dump())
	}
	return valid
}

// stationsByContinent renders "<continent>: <count>" pairs sorted by
// continent name. A transcontinental country counts towards the first
// continent listed for it.
func (c *Collector) stationsByContinent(stations []domain.StationMetadata) string {
	counts := make(map[string]int)
	for i := range stations {
		name := unknownContinent
		if continents := c.world.ContinentsForCountry(stations[i].CountryCode); len(continents) > 0 {
			name = continents[0].Name
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + strconv.Itoa(counts[name])
	}
	return strings.Join(parts, ", ")
}

// TotalLocations sums the location count of every station.
func TotalLocations(stations []domain.StationMetadata) int {
	total := 0
	for i := range stations {
		total += stations[i].LocationCount()
	}
	return total
}

// RetiredStations counts stations that are no longer operating.
func RetiredStations(stations []domain.StationMetadata) int {
	n := 0
	for i := range stations {
		if stations[i].IsRetiredStation() {
			n++
		}
	}
	return n
}

// Earliest returns the station with the smallest known start date together
// with the location holding that start. Histories are sorted by start date on
// a copy first, so file order does not matter. Stations without a known start
// take no part. On a tie the first station wins.
func Earliest(stations []domain.StationMetadata) (*domain.StationMetadata, domain.StationLocation, bool) {
	var (
		best    *domain.StationMetadata
		bestLoc domain.StationLocation
	)
	for i := range stations {
		sorted := stations[i].Clone()
		sorted.SortLocationsByStartDate()
		loc, ok := sorted.EarliestLocation()
		if !ok {
			continue
		}
		if best == nil || loc.Period().Start.Before(bestLoc.Period().Start) {
			best = &stations[i]
			bestLoc = loc
		}
	}
	return best, bestLoc, best != nil
}

// Networks returns the sorted union of every station's network tags.
func Networks(stations []domain.StationMetadata) []string {
	seen := make(map[string]struct{})
	for i := range stations {
		for _, tag := range stations[i].Networks() {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// CountryCodes returns the sorted set of non-empty country codes.
func CountryCodes(stations []domain.StationMetadata) []string {
	var codes []string
	for i := range stations {
		if cc := stations[i].CountryCode; cc != "" && !slices.Contains(codes, cc) {
			codes = append(codes, cc)
		}
	}
	slices.Sort(codes)
	return codes
}
