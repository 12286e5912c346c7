package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Strips Inc with period", "Acme Inc.", "Acme"},
		{"Strips Inc without period", "Acme Inc", "Acme"},
		{"Strips LLC", "Widgets LLC", "Widgets"},
		{"Strips Ltd", "Foo Ltd", "Foo"},
		{"Strips Corp", "Initech Corp", "Initech"},
		{"Strips Corporation", "Umbrella Corporation", "Umbrella"},
		{"Strips Co", "Wayne Co.", "Wayne"},
		{"Strips stacked suffixes", "Acme Co Inc", "Acme"},
		{"Trims whitespace", "  Globex  ", "Globex"},
		{"Trailing comma removed", "Hooli,", "Hooli"},
		{"Keeps suffix-like word mid-name", "Inc Magazine Media", "Inc Magazine Media"},
		{"Empty string", "", ""},
		{"Multi-word company", "Stark Industries Inc.", "Stark Industries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyName(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Strips brackets", "[Senior Engineer]", "Senior Engineer"},
		{"Strips parentheses", "(Backend Developer)", "Backend Developer"},
		{"Strips stacked wrappers", "[(Platform Engineer)]", "Platform Engineer"},
		{"Trims whitespace", "  Staff Engineer  ", "Staff Engineer"},
		{"Trailing paren stripped even when unbalanced", "Engineer (Remote)", "Engineer (Remote"},
		{"Plain title untouched", "Data Engineer", "Data Engineer"},
		{"Empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(tt.input))
		})
	}
}
