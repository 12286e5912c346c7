package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJobBatch(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name:    "Valid batch",
			doc:     `{"normalized_jobs": [{"title": "Engineer", "listing_url": "https://x/1"}], "discarded_count": 0}`,
			wantErr: false,
		},
		{
			name:    "Valid with discards",
			doc:     `{"normalized_jobs": [], "discarded_count": 2, "discard_reasons": ["spam", "spam"]}`,
			wantErr: false,
		},
		{
			name:    "Missing discarded_count",
			doc:     `{"normalized_jobs": []}`,
			wantErr: true,
		},
		{
			name:    "Jobs not an array",
			doc:     `{"normalized_jobs": {"title": "x"}, "discarded_count": 0}`,
			wantErr: true,
		},
		{
			name:    "Negative discard count",
			doc:     `{"normalized_jobs": [], "discarded_count": -1}`,
			wantErr: true,
		},
		{
			name:    "Not an object",
			doc:     `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJobBatch([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMatchScore(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"Valid score", `{"match_score": 0.85, "match_reasoning": "good fit", "missing_skills": []}`, false},
		{"Score at bounds", `{"match_score": 1.0}`, false},
		{"Score above one", `{"match_score": 1.5}`, true},
		{"Score negative", `{"match_score": -0.1}`, true},
		{"Missing score", `{"match_reasoning": "no score"}`, true},
		{"Score as string", `{"match_score": "0.8"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMatchScore([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := ValidateMatchScore([]byte(`{"match_score": 2}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "MatchScore", ve.Schema)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "match_score")
}
