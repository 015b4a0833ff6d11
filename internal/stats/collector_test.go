package stats

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/station-stats/internal/domain"
	"github.com/couchcryptid/station-stats/internal/world"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func location(start, end domain.Date) domain.StationLocation {
	return domain.NewStationLocation(domain.NewCoordinate(44.58333, -124.05), domain.NewPeriod(start, end))
}

func station(ncdc int64, name, cc string, networks []string, locs ...domain.StationLocation) domain.StationMetadata {
	m := domain.NewStationMetadata(ncdc)
	m.Name = name
	m.CountryCode = cc
	m.AddNetworks(networks...)
	for _, l := range locs {
		m.AddLocation(l)
	}
	return m
}

func sampleStations() []domain.StationMetadata {
	return []domain.StationMetadata{
		station(10000001, "NEWPORT MUNICIPAL AP", "US", []string{"COOP", "USHCN"},
			location(domain.UnknownDate(), domain.KnownDate(1949, time.July, 12)),
			location(domain.KnownDate(1949, time.July, 13), domain.OpenEndedDate()),
		),
		station(10000158, "GUSTAVUS AP", "US", []string{"COOP", "ASOS"},
			location(domain.KnownDate(1931, time.January, 1), domain.KnownDate(1941, time.December, 31)),
			location(domain.KnownDate(1942, time.January, 1), domain.KnownDate(2015, time.January, 1)),
		),
		station(20000001, "ALERT", "CA", []string{"ACORN"},
			location(domain.KnownDate(1950, time.January, 1), domain.KnownDate(1960, time.January, 1)),
			location(domain.KnownDate(1955, time.January, 1), domain.OpenEndedDate()),
		),
		station(30000001, "MYSTERY", "", nil,
			location(domain.UnknownDate(), domain.OpenEndedDate()),
		),
	}
}

func TestCollector_Collect(t *testing.T) {
	c := NewCollector(world.Default(), discardLogger())

	got := c.Collect(sampleStations())

	want := Statistics{
		StationCount:        "4",
		LocationCount:       "7",
		ValidPeriodCount:    "3",
		EarliestStation:     "NCDC: 10000158 GUSTAVUS AP (1931-01-01)",
		RetiredStationCount: "1",
		AvailableNetworks:   "ACORN, ASOS, COOP, USHCN",
		CountryCount:        "2",
		StationsByContinent: "North America: 3, Unknown: 1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_Collect_Empty(t *testing.T) {
	c := NewCollector(world.Default(), discardLogger())

	got := c.Collect(nil)

	assert.Equal(t, "0", got[StationCount])
	assert.Equal(t, "0", got[LocationCount])
	assert.Equal(t, "0", got[ValidPeriodCount])
	assert.Equal(t, "0", got[RetiredStationCount])
	assert.Equal(t, "", got[AvailableNetworks])
	assert.NotContains(t, got, EarliestStation)
	assert.NotContains(t, got, StationsByContinent)
}

func TestEarliest(t *testing.T) {
	t.Run("ignores unknown starts", func(t *testing.T) {
		stations := []domain.StationMetadata{
			station(1, "A", "", nil, location(domain.UnknownDate(), domain.KnownDate(1900, time.January, 1))),
			station(2, "B", "", nil, location(domain.KnownDate(1920, time.January, 1), domain.OpenEndedDate())),
		}
		got, _, ok := Earliest(stations)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.NCDC)
	})

	t.Run("first station wins a tie", func(t *testing.T) {
		stations := []domain.StationMetadata{
			station(1, "A", "", nil, location(domain.KnownDate(1920, time.January, 1), domain.OpenEndedDate())),
			station(2, "B", "", nil, location(domain.KnownDate(1920, time.January, 1), domain.OpenEndedDate())),
		}
		got, _, ok := Earliest(stations)
		require.True(t, ok)
		assert.Equal(t, int64(1), got.NCDC)
	})

	t.Run("out of order history", func(t *testing.T) {
		stations := []domain.StationMetadata{
			station(1, "A", "", nil,
				location(domain.KnownDate(1950, time.January, 1), domain.KnownDate(1960, time.January, 1)),
				location(domain.KnownDate(1900, time.January, 1), domain.KnownDate(1940, time.January, 1)),
			),
			station(2, "B", "", nil, location(domain.KnownDate(1920, time.January, 1), domain.OpenEndedDate())),
		}
		got, loc, ok := Earliest(stations)
		require.True(t, ok)
		assert.Equal(t, int64(1), got.NCDC)
		assert.True(t, loc.Period().Start.Equal(domain.KnownDate(1900, time.January, 1)))

		locs := stations[0].Locations()
		assert.True(t, locs[0].Period().Start.Equal(domain.KnownDate(1950, time.January, 1)), "history left in file order")
	})

	t.Run("all unknown", func(t *testing.T) {
		stations := []domain.StationMetadata{
			station(1, "A", "", nil, location(domain.UnknownDate(), domain.OpenEndedDate())),
			station(2, "B", "", nil),
		}
		_, _, ok := Earliest(stations)
		assert.False(t, ok)
	})
}

func TestCollector_Collect_EarliestOutOfOrder(t *testing.T) {
	c := NewCollector(world.Default(), discardLogger())
	stations := []domain.StationMetadata{
		station(1, "LATE FIRST", "US", nil,
			location(domain.KnownDate(1950, time.January, 1), domain.KnownDate(1960, time.January, 1)),
			location(domain.KnownDate(1900, time.January, 1), domain.KnownDate(1940, time.January, 1)),
		),
		station(2, "STEADY", "US", nil, location(domain.KnownDate(1920, time.January, 1), domain.OpenEndedDate())),
	}

	got := c.Collect(stations)
	assert.Equal(t, "NCDC: 1 LATE FIRST (1900-01-01)", got[EarliestStation])
	assert.Equal(t, "1", got[ValidPeriodCount])
}

func TestNetworksAndCountryCodes(t *testing.T) {
	stations := sampleStations()
	if diff := cmp.Diff([]string{"ACORN", "ASOS", "COOP", "USHCN"}, Networks(stations)); diff != "" {
		t.Errorf("Networks() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"CA", "US"}, CountryCodes(stations)); diff != "" {
		t.Errorf("CountryCodes() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 7, TotalLocations(stations))
	assert.Equal(t, 1, RetiredStations(stations))
}
