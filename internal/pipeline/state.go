// Package pipeline sequences the run stages: Scout collects raw postings from
// the enabled sources, Normalizer turns them into validated jobs, Matcher
// scores them against the candidate profile, and Reviewer deduplicates and
// persists the survivors. The Orchestrator owns the run lifecycle.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/daniel/jobscout/internal/db"
	"github.com/daniel/jobscout/internal/sources"
	"github.com/daniel/jobscout/internal/types"
)

// Timeline step names recorded during a run.
const (
	StepScanStarted    = "scan_started"
	StepSourcesScanned = "sources_scanned"
	StepJobsNormalized = "jobs_normalized"
	StepJobsMatched    = "jobs_matched"
	StepJobsSaved      = "jobs_saved"
	StepScanCompleted  = "scan_completed"
	StepScanFailed     = "scan_failed"
	StepScanStopped    = "scan_stopped"
)

// ScoutInput names the enabled sources and the search query for one run.
type ScoutInput struct {
	Sources []string
	Query   sources.Query
}

// ScoutOutput is the concatenation of all adapters' raw postings. Order is
// not significant.
type ScoutOutput struct {
	RawPostings []types.RawPosting
}

// NormalizeOutput carries the validated jobs plus discard accounting.
type NormalizeOutput struct {
	Jobs           []types.Job
	Discarded      int
	DiscardReasons []string
}

// MatchOutput carries the jobs that passed the threshold plus scoring stats
// for the run record.
type MatchOutput struct {
	Matched  []types.Job
	Scored   int
	AvgScore float64
}

// ReviewOutput carries the persisted jobs plus dedup accounting.
type ReviewOutput struct {
	Saved      []types.Job
	Duplicates int
	Errors     []string
}

// JobStore is the persisted-job collaborator consumed by the Reviewer.
type JobStore interface {
	FindJobByFingerprint(ctx context.Context, userID, fingerprint string) (*types.Job, error)
	InsertJob(ctx context.Context, job *types.Job) (string, error)
}

// Store is the full persistence boundary consumed by the Orchestrator.
type Store interface {
	JobStore
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
	CreateRun(ctx context.Context, userID string, srcs []string) (*db.Run, error)
	UpdateRun(ctx context.Context, id uuid.UUID, update db.RunUpdate) error
	FindLatestRun(ctx context.Context, userID, status string) (*db.Run, error)
	AddTimelineEntry(ctx context.Context, userID string, runID *uuid.UUID, step string, metadata map[string]any) error
}
