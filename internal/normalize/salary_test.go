package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		min      float64
		max      float64
		currency string
		interval string
	}{
		{"Range with k and interval", "$100k-$150k per year", 100000, 150000, "$", "year"},
		{"Single value euro", "€80k", 80000, 80000, "€", ""},
		{"Range with to", "£40k to £60k per month", 40000, 60000, "£", "month"},
		{"Plain number", "120000 per year", 120000, 120000, "", "year"},
		{"Commas stripped", "$90,000-$120,000 per year", 90000, 120000, "$", "year"},
		{"Hourly", "$50 per hour", 50, 50, "$", "hour"},
		{"En dash range", "$100k–$140k", 100000, 140000, "$", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Salary(tt.input)
			require.NotNil(t, got.Min, "min should parse")
			require.NotNil(t, got.Max, "max should parse")
			assert.Equal(t, tt.min, *got.Min)
			assert.Equal(t, tt.max, *got.Max)
			assert.Equal(t, tt.currency, got.Currency)
			assert.Equal(t, tt.interval, got.Interval)
		})
	}
}

func TestSalaryUnparseable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty string", ""},
		{"Whitespace", "   "},
		{"No digits", "competitive compensation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Salary(tt.input)
			assert.Nil(t, got.Min)
			assert.Nil(t, got.Max)
			assert.Empty(t, got.Currency)
			assert.Empty(t, got.Interval)
		})
	}
}
