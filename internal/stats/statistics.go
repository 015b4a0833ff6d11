// Package stats computes summary statistics over loaded station metadata and
// renders them as a plain-text report.
package stats

// Key names one statistic.
type Key string

const (
	StationCount        Key = "station_count"
	LocationCount       Key = "location_count"
	ValidPeriodCount    Key = "valid_period_count"
	EarliestStation     Key = "earliest_station"
	RetiredStationCount Key = "retired_station_count"
	AvailableNetworks   Key = "available_networks"
	CountryCount        Key = "country_count"
	StationsByContinent Key = "stations_by_continent"
	GeneratedAt         Key = "generated_at"
)

// Statistics maps statistic keys to their rendered values. A key that could
// not be computed is left out rather than given an empty value.
type Statistics map[Key]string

// line is one entry of the report layout.
type line struct {
	key   Key
	label string
}

// reportLayout fixes the order and labels of the report lines.
var reportLayout = []line{
	{StationCount, "Station count: "},
	{LocationCount, "Location count: "},
	{ValidPeriodCount, "Valid period count: "},
	{EarliestStation, "Earliest station: "},
	{RetiredStationCount, "Retired station count: "},
	{AvailableNetworks, "Available networks: "},
	{CountryCount, "Country count: "},
	{StationsByContinent, "Stations by continent: "},
	{GeneratedAt, "Generated at: "},
}
