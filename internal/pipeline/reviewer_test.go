package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/normalize"
	"github.com/daniel/jobscout/internal/types"
)

func candidateJob(title, company, sourceID, location string) types.Job {
	return types.Job{
		UserID:   "user-1",
		Title:    title,
		Company:  company,
		SourceID: sourceID,
		Location: location,
		Status:   types.StatusMatched,
		Metadata: types.JobMetadata{
			Fingerprint: normalize.Fingerprint(title, company, sourceID, location),
		},
	}
}

func TestReviewerDedupIsIdempotent(t *testing.T) {
	store := newFakeStore(nil)
	r := NewReviewer(store, zap.NewNop())

	first := candidateJob("Go Engineer", "Acme", "gh-1", "Remote")
	duplicate := candidateJob("Go Engineer", "Acme", "gh-1", "Remote")
	distinct := candidateJob("Go Engineer", "Globex", "gh-2", "Remote")

	out := r.Review(context.Background(), "user-1", []types.Job{first, duplicate, distinct})

	require.Len(t, out.Saved, 2, "identical fingerprints yield exactly one stored record")
	assert.Equal(t, 1, out.Duplicates)
	assert.Equal(t, 2, store.insertCalls)

	// A second pass over the same candidates saves nothing new.
	again := r.Review(context.Background(), "user-1", []types.Job{first, distinct})
	assert.Empty(t, again.Saved)
	assert.Equal(t, 2, again.Duplicates)
}

func TestReviewerAssignsStoreID(t *testing.T) {
	store := newFakeStore(nil)
	r := NewReviewer(store, zap.NewNop())

	out := r.Review(context.Background(), "user-1", []types.Job{
		candidateJob("Go Engineer", "Acme", "gh-1", "Remote"),
	})

	require.Len(t, out.Saved, 1)
	assert.Equal(t, "job-1", out.Saved[0].ID)
}

func TestReviewerStoreErrorsDoNotAbortPass(t *testing.T) {
	store := newFakeStore(nil)
	store.insertErr = errors.New("connection reset")
	r := NewReviewer(store, zap.NewNop())

	out := r.Review(context.Background(), "user-1", []types.Job{
		candidateJob("Job A", "Acme", "1", ""),
		candidateJob("Job B", "Acme", "2", ""),
	})

	assert.Empty(t, out.Saved)
	assert.Len(t, out.Errors, 2)
	assert.Equal(t, 2, store.insertCalls, "second candidate still attempted")
}
