// Package world provides read-only continent, country and US state
// reference tables, built once from CSV embedded in the binary.
package world

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/countries.csv data/us_states.csv
var data embed.FS

// Continent is one of the seven continents, keyed by its two-letter code.
type Continent struct {
	Name string
	Code string
}

// Country is a country or territory keyed by its ISO 3166 alpha-2 code.
// Number is 0 for entries without an ISO numeric code.
type Country struct {
	Name   string
	Alpha2 string
	Alpha3 string
	Number int
}

// State is a US state, district or outlying area.
type State struct {
	Name       string
	Code       string
	Category   string
	Contiguous bool
}

// World indexes the reference tables. It is never modified after Parse returns.
type World struct {
	continents        map[string]Continent
	continentOrder    []string
	countries         map[string]Country
	countryOrder      []string
	countryContinents map[string][]string
	states            map[string]State
	stateOrder        []string
}

var loadDefault = sync.OnceValues(func() (*World, error) {
	countries, err := data.Open("data/countries.csv")
	if err != nil {
		return nil, err
	}
	defer countries.Close()
	states, err := data.Open("data/us_states.csv")
	if err != nil {
		return nil, err
	}
	defer states.Close()
	return Parse(countries, states)
})

// Default returns the tables built from the embedded data. The embedded CSV
// is fixed at build time, so a parse failure is a programming error.
func Default() *World {
	w, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("world: embedded reference data: %v", err))
	}
	return w
}

// Parse builds a World from a countries CSV (continent_name, continent_code,
// country_name, alpha2, alpha3, number) and a US states CSV (contiguous,
// category, code, name). Both start with a header row. A country listed under
// several continents keeps them in file order.
func Parse(countries, states io.Reader) (*World, error) {
	w := &World{
		continents:        make(map[string]Continent),
		countries:         make(map[string]Country),
		countryContinents: make(map[string][]string),
		states:            make(map[string]State),
	}

	err := readCSV(countries, 6, func(row []string) error {
		number := 0
		if row[5] != "" {
			n, err := strconv.Atoi(row[5])
			if err != nil {
				return fmt.Errorf("country %s number: %w", row[3], err)
			}
			number = n
		}
		w.addContinent(Continent{Name: row[0], Code: row[1]})
		w.addCountry(Country{Name: row[2], Alpha2: row[3], Alpha3: row[4], Number: number}, row[1])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse countries: %w", err)
	}

	err = readCSV(states, 4, func(row []string) error {
		contiguous, err := strconv.ParseBool(row[0])
		if err != nil {
			return fmt.Errorf("state %s contiguous: %w", row[2], err)
		}
		code := row[2]
		if _, ok := w.states[code]; !ok {
			w.stateOrder = append(w.stateOrder, code)
		}
		w.states[code] = State{Name: row[3], Code: code, Category: row[1], Contiguous: contiguous}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse us states: %w", err)
	}
	return w, nil
}

func readCSV(r io.Reader, fields int, fn func([]string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	if _, err := cr.Read(); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func (w *World) addContinent(c Continent) {
	if _, ok := w.continents[c.Code]; !ok {
		w.continentOrder = append(w.continentOrder, c.Code)
	}
	w.continents[c.Code] = c
}

func (w *World) addCountry(c Country, continent string) {
	if _, ok := w.countries[c.Alpha2]; !ok {
		w.countryOrder = append(w.countryOrder, c.Alpha2)
	}
	w.countries[c.Alpha2] = c
	if !slices.Contains(w.countryContinents[c.Alpha2], continent) {
		w.countryContinents[c.Alpha2] = append(w.countryContinents[c.Alpha2], continent)
	}
}

// Continent looks up a continent by its two-letter code.
func (w *World) Continent(code string) (Continent, bool) {
	c, ok := w.continents[strings.ToUpper(code)]
	return c, ok
}

// Continents returns every continent in first-seen order.
func (w *World) Continents() []Continent {
	out := make([]Continent, 0, len(w.continentOrder))
	for _, code := range w.continentOrder {
		out = append(out, w.continents[code])
	}
	return out
}

// CountryByCode looks up a country by its alpha-2 code.
func (w *World) CountryByCode(alpha2 string) (Country, bool) {
	c, ok := w.countries[strings.ToUpper(alpha2)]
	return c, ok
}

// CountryCount returns the number of distinct countries.
func (w *World) CountryCount() int { return len(w.countryOrder) }

// ContinentsForCountry returns the continents a country belongs to, in file
// order. Transcontinental countries return more than one.
func (w *World) ContinentsForCountry(alpha2 string) []Continent {
	codes := w.countryContinents[strings.ToUpper(alpha2)]
	out := make([]Continent, 0, len(codes))
	for _, code := range codes {
		out = append(out, w.continents[code])
	}
	return out
}

// CountriesIn returns the alpha-2 codes of every country on a continent.
func (w *World) CountriesIn(continent string) []string {
	continent = strings.ToUpper(continent)
	var out []string
	for _, alpha2 := range w.countryOrder {
		if slices.Contains(w.countryContinents[alpha2], continent) {
			out = append(out, alpha2)
		}
	}
	return out
}

// State looks up a US state, district or outlying area by its postal code.
func (w *World) State(code string) (State, bool) {
	s, ok := w.states[strings.ToUpper(code)]
	return s, ok
}

// ContiguousStates returns the states and districts of the contiguous USA.
func (w *World) ContiguousStates() []State {
	var out []State
	for _, code := range w.stateOrder {
		if s := w.states[code]; s.Contiguous {
			out = append(out, s)
		}
	}
	return out
}
