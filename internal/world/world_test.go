package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	countriesHeader = "continent_name,continent_code,country_name,alpha2,alpha3,number\n"
	statesHeader    = "contiguous,category,code,name\n"
)

func TestDefault(t *testing.T) {
	w := Default()

	assert.Len(t, w.Continents(), 7)

	us, ok := w.CountryByCode("us")
	require.True(t, ok)
	assert.Equal(t, Country{Name: "United States of America", Alpha2: "US", Alpha3: "USA", Number: 840}, us)
	assert.Equal(t, []Continent{{Name: "North America", Code: "NA"}}, w.ContinentsForCountry("US"))

	vt, ok := w.State("VT")
	require.True(t, ok)
	assert.Equal(t, State{Name: "Vermont", Code: "VT", Category: "state", Contiguous: true}, vt)

	pr, ok := w.State("PR")
	require.True(t, ok)
	assert.Equal(t, "outlying area", pr.Category)
	assert.False(t, pr.Contiguous)

	assert.Len(t, w.ContiguousStates(), 49)
	assert.Same(t, w, Default())
}

func TestDefault_TranscontinentalCountry(t *testing.T) {
	w := Default()
	continents := w.ContinentsForCountry("RU")
	require.Len(t, continents, 2)
	assert.Equal(t, "EU", continents[0].Code)
	assert.Equal(t, "AS", continents[1].Code)
	assert.Contains(t, w.CountriesIn("AS"), "RU")
	assert.Contains(t, w.CountriesIn("eu"), "RU")
}

func TestParse(t *testing.T) {
	countries := countriesHeader +
		"Oceania,OC,New Zealand,NZ,NZL,554\n" +
		"North America,NA,\"Nicaragua, Republic of\",NI,NIC,558\n" +
		"Asia,AS,Spratly Islands,XS,,\n"
	states := statesHeader + "True,state,AL,Alabama\n"

	w, err := Parse(strings.NewReader(countries), strings.NewReader(states))
	require.NoError(t, err)

	ni, ok := w.CountryByCode("NI")
	require.True(t, ok)
	assert.Equal(t, "Nicaragua, Republic of", ni.Name)

	xs, ok := w.CountryByCode("XS")
	require.True(t, ok)
	assert.Zero(t, xs.Number)

	oc, ok := w.Continent("OC")
	require.True(t, ok)
	assert.Equal(t, "Oceania", oc.Name)

	assert.Equal(t, 3, w.CountryCount())
	_, ok = w.CountryByCode("ZZ")
	assert.False(t, ok)
	assert.Empty(t, w.ContinentsForCountry("ZZ"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		countries string
		states    string
	}{
		{"bad country number", countriesHeader + "Oceania,OC,New Zealand,NZ,NZL,abc\n", statesHeader},
		{"short country row", countriesHeader + "Oceania,OC,New Zealand\n", statesHeader},
		{"bad contiguous flag", countriesHeader, statesHeader + "maybe,state,AL,Alabama\n"},
		{"empty countries", "", statesHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.countries), strings.NewReader(tt.states))
			assert.Error(t, err)
		})
	}
}
