package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/types"
)

func scoreResponse(score float64) string {
	return fmt.Sprintf(`{"match_score": %g, "match_reasoning": "fits", "missing_skills": []}`, score)
}

func testProfile() *types.Profile {
	return &types.Profile{
		UserID:          "user-1",
		Skills:          []string{"Go", "Postgres"},
		ExperienceYears: 5,
		Location:        "Berlin",
	}
}

func TestMatcherThresholdIsInclusive(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		matched bool
	}{
		{"exactly at threshold", 0.7, true},
		{"just below threshold", 0.69, false},
		{"well above threshold", 0.95, true},
		{"zero", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
				return scoreResponse(tt.score), nil
			}}

			m := NewMatcher(client, 0.7, zap.NewNop())
			out := m.Match(context.Background(), []types.Job{{Title: "Go Engineer"}}, testProfile())

			assert.Equal(t, 1, out.Scored)
			if tt.matched {
				require.Len(t, out.Matched, 1)
				assert.Equal(t, types.StatusMatched, out.Matched[0].Status)
				assert.Equal(t, tt.score, out.Matched[0].Score())
			} else {
				assert.Empty(t, out.Matched)
			}
		})
	}
}

func TestMatcherFailureLeavesJobUnscored(t *testing.T) {
	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return "", errors.New("model timeout")
	}}

	m := NewMatcher(client, 0.7, zap.NewNop())
	out := m.Match(context.Background(), []types.Job{{Title: "Go Engineer"}}, testProfile())

	assert.Equal(t, 0, out.Scored)
	assert.Empty(t, out.Matched)
	assert.Equal(t, 0.0, out.AvgScore)
}

func TestMatcherRejectsOutOfRangeScore(t *testing.T) {
	// The schema caps match_score at 1; an out-of-range response is treated
	// as a scoring failure.
	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return scoreResponse(1.5), nil
	}}

	m := NewMatcher(client, 0.7, zap.NewNop())
	out := m.Match(context.Background(), []types.Job{{Title: "Go Engineer"}}, testProfile())

	assert.Equal(t, 0, out.Scored)
	assert.Empty(t, out.Matched)
}

func TestMatcherAverageScore(t *testing.T) {
	var i int
	scores := []float64{0.9, 0.5}
	client := &fakeLLM{}
	client.generate = func(string, llm.ModelTier) (string, error) {
		client.mu.Lock()
		score := scores[i%len(scores)]
		i++
		client.mu.Unlock()
		return scoreResponse(score), nil
	}

	m := NewMatcher(client, 0.7, zap.NewNop())
	out := m.Match(context.Background(), []types.Job{
		{Title: "Job A"}, {Title: "Job B"},
	}, testProfile())

	assert.Equal(t, 2, out.Scored)
	assert.Len(t, out.Matched, 1)
	assert.InDelta(t, 0.7, out.AvgScore, 0.0001)
}

func TestMatcherPromptIncludesProfileKeywords(t *testing.T) {
	var prompt string
	client := &fakeLLM{generate: func(p string, _ llm.ModelTier) (string, error) {
		prompt = p
		return scoreResponse(0.8), nil
	}}

	profile := testProfile()
	m := NewMatcher(client, 0.7, zap.NewNop())
	m.Match(context.Background(), []types.Job{{Title: "Go Engineer", Company: "Acme"}}, profile)

	// Keywords fall back to skills when the profile has none.
	assert.True(t, strings.Contains(prompt, "Go, Postgres"))
	assert.True(t, strings.Contains(prompt, "Go Engineer"))
}

func TestMatcherDefaultThreshold(t *testing.T) {
	m := NewMatcher(&fakeLLM{}, 0, zap.NewNop())
	assert.Equal(t, DefaultMatchThreshold, m.threshold)
}
