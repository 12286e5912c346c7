package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		listingURL string
		applyURL   string
		valid      bool
		reason     string
	}{
		{"Both URLs present", "Engineer", "https://x/1", "https://x/apply", true, ""},
		{"Listing URL only", "Engineer", "https://x/1", "", true, ""},
		{"Apply URL only", "Engineer", "", "https://x/apply", true, ""},
		{"No URL at all", "Engineer", "", "", false, ReasonMissingURL},
		{"Missing title", "", "https://x/1", "", false, ReasonMissingTitle},
		{"Missing URL wins over missing title", "", "", "", false, ReasonMissingURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := Validate(tt.title, tt.listingURL, tt.applyURL)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidateIgnoresOtherFields(t *testing.T) {
	// Only title and URL presence matter; everything else may be empty.
	valid, reason := Validate("Engineer", "https://x/1", "")
	assert.True(t, valid)
	assert.Empty(t, reason)
}
