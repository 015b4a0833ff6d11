// Package domain models NOAA weather-station metadata: stations, their
// location history and the dates that bound each location.
//
// # Data Source
//
// Records come from the EMSHR Lite file (Enhanced Master Station History
// Report) published by NCEI at https://www.ncei.noaa.gov/access/homr/reports.
// Each data line describes one station at one location for one period. A
// station with several moves therefore spans several consecutive lines, all
// sharing the same NCDC id and ordered chronologically.
//
// # EMSHR Date Conventions
//
// BEG_DT and END_DT are 8-digit YYYYMMDD values. Two values are sentinels
// rather than dates:
//
//	00010101  no recorded beginning  ->  DateUnknown
//	99991231  still operating        ->  DateOpenEnded
//
// The pair "00010101 99991231" means the station is operating but its start
// was never recorded. Sentinels are mapped at parse time (see [ParseDate]) and
// only turned back into their 8-digit form by [Date.Format]. For ordering,
// DateUnknown sorts before every real date and DateOpenEnded after every real
// date, which lets a period starting at the unknown sentinel be a valid
// predecessor of any later period.
//
// A small number of lines (mostly in Colorado) carry BEG_DT later than
// END_DT. The loader swaps them rather than rejecting the line.
//
// # Coordinates
//
// LAT_DEC and LON_DEC are decimal degrees. Upper-air (balloon) sites leave
// them blank; a blank value becomes a nil part of [Coordinate].
//
// # Corrections
//
// The source occasionally re-emits a line for exactly the same period right
// after the original, with corrected values. [StationMetadata.AddLocation]
// replaces the previous entry in that case, so a history never holds two
// entries for the same period.
//
// # Identity
//
// Two records describe the same station when their NCDC ids match
// ([StationMetadata.SameStation]); [StationMetadata.Equal] compares full
// contents and is what tests use.
package domain
