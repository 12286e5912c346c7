package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/normalize"
	"github.com/daniel/jobscout/internal/types"
)

func TestNormalizerFinalizesDraftJobs(t *testing.T) {
	batchResponse := `{
		"normalized_jobs": [{
			"source_id": "gh-1",
			"title": "[Senior Engineer]",
			"company": "Acme Inc.",
			"location": "Remote",
			"remote": true,
			"salary": "$100k-$150k per year",
			"posted_at": "3 days ago",
			"description": "Go, Postgres, Kubernetes",
			"listing_url": "https://x/1",
			"apply_url": ""
		}],
		"discarded_count": 0
	}`

	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return batchResponse, nil
	}}

	n := NewNormalizer(client, zap.NewNop())
	out := n.Normalize(context.Background(), "user-1", "run-1", []types.RawPosting{
		{"title": "[Senior Engineer]", "scraped_from": "greenhouse"},
	})

	require.Len(t, out.Jobs, 1)
	assert.Equal(t, 0, out.Discarded)

	job := out.Jobs[0]
	assert.Equal(t, "Senior Engineer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "https://x/1", job.ApplyURL, "apply_url defaults to listing_url")
	assert.Equal(t, "greenhouse", job.Source)
	assert.Equal(t, types.StatusNew, job.Status)
	assert.Equal(t, "run-1", job.Metadata.ScanRunID)
	assert.NotEmpty(t, job.Metadata.Fingerprint)

	require.NotNil(t, job.Salary.Min)
	assert.Equal(t, 100000.0, *job.Salary.Min)
	require.NotNil(t, job.Salary.Max)
	assert.Equal(t, 150000.0, *job.Salary.Max)
	assert.Equal(t, "$", job.Salary.Currency)
	assert.Equal(t, "year", job.Salary.Interval)

	assert.NotNil(t, job.PostedAt)
	assert.Contains(t, job.SkillsExtracted, "Go")
	assert.Contains(t, job.Tags, "senior")
}

func TestNormalizerDiscardsURLlessJob(t *testing.T) {
	batchResponse := `{
		"normalized_jobs": [{
			"title": "Complete But Unreachable",
			"company": "Acme",
			"location": "Berlin",
			"description": "Everything except a URL"
		}],
		"discarded_count": 0
	}`

	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return batchResponse, nil
	}}

	n := NewNormalizer(client, zap.NewNop())
	out := n.Normalize(context.Background(), "user-1", "run-1", []types.RawPosting{{"title": "x"}})

	assert.Empty(t, out.Jobs)
	assert.Equal(t, 1, out.Discarded)
	assert.Contains(t, out.DiscardReasons, normalize.ReasonMissingURL)
}

func TestNormalizerDiscardsWholeBatchOnMalformedResponse(t *testing.T) {
	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return "this is not json", nil
	}}

	n := NewNormalizer(client, zap.NewNop())
	out := n.Normalize(context.Background(), "user-1", "run-1", []types.RawPosting{
		{"title": "a"}, {"title": "b"}, {"title": "c"},
	})

	assert.Empty(t, out.Jobs)
	assert.Equal(t, 3, out.Discarded)
	assert.Contains(t, out.DiscardReasons, normalize.ReasonLLMParseError)
}

func TestNormalizerDiscardsBatchOnModelError(t *testing.T) {
	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return "", errors.New("rate limited")
	}}

	n := NewNormalizer(client, zap.NewNop())
	out := n.Normalize(context.Background(), "user-1", "run-1", []types.RawPosting{{"title": "a"}})

	assert.Empty(t, out.Jobs)
	assert.Equal(t, 1, out.Discarded)
}

func TestNormalizerBatchesOfTen(t *testing.T) {
	client := &fakeLLM{generate: func(string, llm.ModelTier) (string, error) {
		return `{"normalized_jobs": [], "discarded_count": 0}`, nil
	}}

	postings := make([]types.RawPosting, 25)
	for i := range postings {
		postings[i] = types.RawPosting{"title": "x"}
	}

	n := NewNormalizer(client, zap.NewNop())
	n.Normalize(context.Background(), "user-1", "run-1", postings)

	assert.Equal(t, 3, client.calls, "25 postings should produce 3 batches")
}
