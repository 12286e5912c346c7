package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/types"
)

// Reviewer enforces at-most-one stored copy per fingerprint. Candidates are
// processed sequentially within a run, so identical fingerprints in the same
// run have exactly one winner. Cross-run races resolve as idempotent no-ops
// on the next read.
type Reviewer struct {
	store JobStore
	log   *zap.Logger
}

func NewReviewer(store JobStore, log *zap.Logger) *Reviewer {
	return &Reviewer{store: store, log: log}
}

// Review looks each candidate up by fingerprint and inserts the ones not yet
// stored. Duplicates are dropped and counted, not reported as errors. Store
// failures are collected per job; they never abort the pass.
func (r *Reviewer) Review(ctx context.Context, userID string, jobs []types.Job) ReviewOutput {
	var out ReviewOutput

	for i := range jobs {
		job := jobs[i]
		fingerprint := job.Metadata.Fingerprint

		existing, err := r.store.FindJobByFingerprint(ctx, userID, fingerprint)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("lookup %q: %v", job.Title, err))
			r.log.Error("fingerprint lookup failed",
				zap.String("title", job.Title),
				zap.Error(err))
			continue
		}
		if existing != nil {
			out.Duplicates++
			continue
		}

		id, err := r.store.InsertJob(ctx, &job)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("insert %q: %v", job.Title, err))
			r.log.Error("job insert failed",
				zap.String("title", job.Title),
				zap.Error(err))
			continue
		}

		job.ID = id
		out.Saved = append(out.Saved, job)
	}

	r.log.Info("reviewer finished",
		zap.Int("saved", len(out.Saved)),
		zap.Int("duplicates", out.Duplicates),
		zap.Int("errors", len(out.Errors)))

	return out
}
