package ratetable

import (
	"errors"
	"testing"

	"paraguay-shipping/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalized = ParseOptions{Normalize: true}

func TestParseRates(t *testing.T) {
	raw := "Asunción|Capital|15000\n" +
		"  Luque | Central | 20000  \r\n" +
		"\n" +
		"Encarnación|35000\n"

	table := ParseRates(raw, normalized)

	assert.Empty(t, table.Skipped)
	assert.Equal(t, 3, table.Len())

	e, ok := table.Lookup("asuncion", "", false)
	require.True(t, ok)
	assert.Equal(t, domain.RateEntry{City: "Asunción", Department: "Capital", Rate: "15000"}, e)

	e, ok = table.Lookup("LUQUE", "", false)
	require.True(t, ok)
	assert.Equal(t, "Luque", e.City)
	assert.Equal(t, "Central", e.Department)
	assert.Equal(t, "20000", e.Rate)

	e, ok = table.Lookup("Encarnacion", "", false)
	require.True(t, ok)
	assert.Equal(t, "", e.Department)
	assert.Equal(t, "35000", e.Rate)
}

func TestParseRatesIsDeterministic(t *testing.T) {
	raw := "Asunción|Capital|15000\nLuque|Central|20000\nbad line\nLuque|Central|21000"

	first := ParseRates(raw, normalized)
	second := ParseRates(raw, normalized)

	assert.Equal(t, first, second)
}

func TestParseRatesAccentAndCaseInsensitive(t *testing.T) {
	for _, configured := range []string{"Asunción", "asuncion", "ASUNCIÓN"} {
		table := ParseRates(configured+"|Capital|15000", normalized)
		for _, typed := range []string{"Asunción", "asuncion", "ASUNCIÓN", " asunción "} {
			e, ok := table.Lookup(typed, "", false)
			require.True(t, ok, "configured %q, typed %q", configured, typed)
			assert.Equal(t, configured, e.City)
			assert.Equal(t, "15000", e.Rate)
		}
	}
}

func TestParseRatesDuplicateKeyLastLineWins(t *testing.T) {
	table := ParseRates("X|Dept|10\nX|Dept|20", normalized)

	e, ok := table.Lookup("X", "", false)
	require.True(t, ok)
	assert.Equal(t, "20", e.Rate)
	assert.Equal(t, 1, table.Len())
}

func TestParseRatesSkipsMalformedLines(t *testing.T) {
	raw := "GoodCity|Dept|10\nBadLineNoDelimiters\nOtherCity|Dept|5\nA|B|C|D\n|Central|5"

	table := ParseRates(raw, normalized)

	e, ok := table.Lookup("GoodCity", "", false)
	require.True(t, ok)
	assert.Equal(t, "10", e.Rate)

	e, ok = table.Lookup("OtherCity", "", false)
	require.True(t, ok)
	assert.Equal(t, "5", e.Rate)

	require.Len(t, table.Skipped, 3)
	assert.Equal(t, 2, table.Skipped[0].Line)
	assert.Equal(t, "BadLineNoDelimiters", table.Skipped[0].Text)
	assert.Equal(t, domain.TableRates, table.Skipped[0].Table)
	assert.Equal(t, 4, table.Skipped[1].Line)
	assert.Equal(t, 5, table.Skipped[2].Line)
	assert.Equal(t, "missing city", table.Skipped[2].Reason)

	var err error = &table.Skipped[0]
	assert.True(t, errors.Is(err, domain.ErrMalformedLine))
}

func TestParseRatesWithoutNormalization(t *testing.T) {
	table := ParseRates("Asunción|Capital|15000", ParseOptions{})

	_, ok := table.Lookup("asuncion", "", false)
	assert.False(t, ok)

	e, ok := table.Lookup(" Asunción ", "", false)
	require.True(t, ok)
	assert.Equal(t, "15000", e.Rate)
}

func TestLookupMatchDepartment(t *testing.T) {
	raw := "San Lorenzo|Central|20000\n" +
		"San Lorenzo|Alto Paraná|45000\n" +
		"Villarrica|40000\n" +
		"Villarrica|Guairá|38000\n"
	table := ParseRates(raw, normalized)

	tests := []struct {
		name       string
		city       string
		department string
		wantRate   string
		wantFound  bool
	}{
		{"exact pair", "san lorenzo", "CENTRAL", "20000", true},
		{"exact pair accents", "San Lorenzo", "Alto Parana", "45000", true},
		{"department overrides city-wide", "Villarrica", "Guairá", "38000", true},
		{"city-wide fallback", "Villarrica", "Caazapá", "40000", true},
		{"unknown department without city-wide line", "San Lorenzo", "Itapúa", "", false},
		{"no destination department uses last line", "San Lorenzo", "", "45000", true},
		{"unknown city", "Pilar", "Ñeembucú", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := table.Lookup(tt.city, tt.department, true)
			assert.Equal(t, tt.wantFound, ok)
			assert.Equal(t, tt.wantRate, e.Rate)
		})
	}
}

func TestLookupOnNilTable(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("Luque", "", false)
	assert.False(t, ok)
	assert.Nil(t, table.Cities())
	assert.Equal(t, 0, table.Len())
}

func TestCities(t *testing.T) {
	raw := "Luque|Central|20000\nAsunción|Capital|15000\nLuque|Central|22000\nasuncion|Capital|16000"

	cities := ParseRates(raw, normalized).Cities()

	assert.Equal(t, []domain.CityOption{
		{City: "Luque", Department: "Central", Rate: "22000"},
		{City: "Asunción", Department: "Capital", Rate: "15000"},
		{City: "asuncion", Department: "Capital", Rate: "16000"},
	}, cities)
}

func TestParsePickups(t *testing.T) {
	raw := "Warehouse A|15\nWarehouse B|20\nNoRate\nWarehouse A|18\n|5"

	pickups := ParsePickups(raw, ParseOptions{})

	assert.Equal(t, []domain.PickupLocation{
		{Label: "Warehouse A", Rate: "18"},
		{Label: "Warehouse B", Rate: "20"},
	}, pickups.Locations())

	require.Len(t, pickups.Skipped, 2)
	assert.Equal(t, domain.TablePickups, pickups.Skipped[0].Table)
	assert.Equal(t, 3, pickups.Skipped[0].Line)
	assert.Equal(t, "missing location", pickups.Skipped[1].Reason)
}

func TestParsePickupsExactKeys(t *testing.T) {
	pickups := ParsePickups("Depósito Central|0\ndeposito central|5", ParseOptions{})
	assert.Len(t, pickups.Locations(), 2)

	pickups = ParsePickups("Depósito Central|0\ndeposito central|5", normalized)
	require.Len(t, pickups.Locations(), 1)
	assert.Equal(t, "deposito central", pickups.Locations()[0].Label)
}
