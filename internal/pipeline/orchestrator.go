package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/db"
	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/sources"
	"github.com/daniel/jobscout/internal/types"
)

// StaleRunThreshold is how long a run may stay in status running before it is
// considered crashed and forcibly failed.
const StaleRunThreshold = time.Hour

var (
	// ErrRunInProgress is returned by StartRun when the owner already has a
	// live run.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrNoActiveRun is returned by StopRun when the owner has no running run.
	ErrNoActiveRun = errors.New("no active run")
	// ErrProfileNotFound is returned when the owner has no stored profile.
	ErrProfileNotFound = errors.New("profile not found")
)

// Options configures an Orchestrator.
type Options struct {
	MatchThreshold float64        // 0 means DefaultMatchThreshold
	RetryPolicy    sources.Policy // zero value means sources.DefaultPolicy()
}

// Orchestrator owns the run lifecycle: it guards against concurrent runs,
// sequences the stages, updates the run record, and appends timeline entries.
type Orchestrator struct {
	store      Store
	scout      *Scout
	normalizer *Normalizer
	matcher    *Matcher
	reviewer   *Reviewer
	log        *zap.Logger
}

// New builds an Orchestrator wiring the four stages over the given store,
// model client, and source registry.
func New(store Store, client llm.Client, registry sources.Registry, opts Options, log *zap.Logger) *Orchestrator {
	policy := opts.RetryPolicy
	if policy.MaxAttempts == 0 {
		policy = sources.DefaultPolicy()
	}

	return &Orchestrator{
		store:      store,
		scout:      NewScout(registry, policy, log),
		normalizer: NewNormalizer(client, log),
		matcher:    NewMatcher(client, opts.MatchThreshold, log),
		reviewer:   NewReviewer(store, log),
		log:        log,
	}
}

func defaultSources() []string {
	return []string{
		types.SourceGoogleJobs,
		types.SourceGreenhouse,
		types.SourceLever,
		types.SourceYCombinator,
		types.SourceLinkedIn,
		types.SourceWellfound,
	}
}

// Run executes a full pipeline run synchronously and returns the terminal run
// record. This is the CLI call path.
func (o *Orchestrator) Run(ctx context.Context, userID string, srcs []string, query sources.Query) (*db.Run, error) {
	run, profile, err := o.beginRun(ctx, userID, srcs)
	if err != nil {
		return nil, err
	}

	o.execute(ctx, run, profile, query)

	final, err := o.store.FindLatestRun(ctx, userID, "")
	if err != nil || final == nil {
		return run, err
	}
	return final, nil
}

// StartRun begins a run asynchronously and returns its id immediately. The
// pipeline executes on a background goroutine detached from the caller's
// cancellation.
func (o *Orchestrator) StartRun(ctx context.Context, userID string, srcs []string, query sources.Query) (uuid.UUID, error) {
	run, profile, err := o.beginRun(ctx, userID, srcs)
	if err != nil {
		return uuid.Nil, err
	}

	go o.execute(context.WithoutCancel(ctx), run, profile, query)

	return run.ID, nil
}

// beginRun enforces the single-live-run guard, loads the profile, and creates
// the run record.
func (o *Orchestrator) beginRun(ctx context.Context, userID string, srcs []string) (*db.Run, *types.Profile, error) {
	if err := o.failIfStaleElseReject(ctx, userID); err != nil {
		return nil, nil, err
	}

	profile, err := o.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, nil, ErrProfileNotFound
	}

	if len(srcs) == 0 {
		srcs = defaultSources()
	}

	run, err := o.store.CreateRun(ctx, userID, srcs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, profile, nil
}

// failIfStaleElseReject rejects when the owner's latest run is live, after
// first failing it when it exceeded the staleness threshold. A crashed run
// must not block new runs forever.
func (o *Orchestrator) failIfStaleElseReject(ctx context.Context, userID string) error {
	latest, err := o.store.FindLatestRun(ctx, userID, db.RunStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to check for active run: %w", err)
	}
	if latest == nil {
		return nil
	}

	if time.Since(latest.StartedAt) < StaleRunThreshold {
		return ErrRunInProgress
	}

	o.log.Warn("failing stale run",
		zap.String("run_id", latest.ID.String()),
		zap.Time("started_at", latest.StartedAt))
	o.markTerminal(ctx, latest, db.RunStatusFailed, "run timed out (stale)")
	return nil
}

// execute drives the four stages for one run. Any stage panic or error is
// caught here, recorded on the run, and the run marked failed; nothing
// escapes to the caller.
func (o *Orchestrator) execute(ctx context.Context, run *db.Run, profile *types.Profile, query sources.Query) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("run panicked", zap.String("run_id", run.ID.String()), zap.Any("panic", r))
			o.markTerminal(ctx, run, db.RunStatusFailed, fmt.Sprintf("pipeline panic: %v", r))
			o.timeline(ctx, run, StepScanFailed, map[string]any{"error": fmt.Sprint(r)})
		}
	}()

	if len(query.Keywords) == 0 {
		query.Keywords = profile.SearchKeywords()
	}
	if query.Location == "" {
		query.Location = profile.Location
	}

	o.timeline(ctx, run, StepScanStarted, map[string]any{"sources": run.Sources})

	scouted := o.scout.Collect(ctx, ScoutInput{Sources: run.Sources, Query: query})
	o.timeline(ctx, run, StepSourcesScanned, map[string]any{"postings": len(scouted.RawPostings)})

	normalized := o.normalizer.Normalize(ctx, run.UserID, run.ID.String(), scouted.RawPostings)
	o.timeline(ctx, run, StepJobsNormalized, map[string]any{
		"jobs":      len(normalized.Jobs),
		"discarded": normalized.Discarded,
	})

	matched := o.matcher.Match(ctx, normalized.Jobs, profile)
	o.timeline(ctx, run, StepJobsMatched, map[string]any{
		"matched":   len(matched.Matched),
		"scored":    matched.Scored,
		"avg_score": matched.AvgScore,
	})

	reviewed := o.reviewer.Review(ctx, run.UserID, matched.Matched)
	o.timeline(ctx, run, StepJobsSaved, map[string]any{
		"saved":      len(reviewed.Saved),
		"duplicates": reviewed.Duplicates,
	})

	for _, msg := range reviewed.Errors {
		msg := msg
		if err := o.store.UpdateRun(ctx, run.ID, db.RunUpdate{AppendError: &msg}); err != nil {
			o.log.Error("failed to record run error", zap.Error(err))
		}
	}

	completed := db.RunStatusCompleted
	jobsFound := len(normalized.Jobs)
	jobsMatched := len(matched.Matched)
	now := time.Now().UTC()
	err := o.store.UpdateRun(ctx, run.ID, db.RunUpdate{
		Status:      &completed,
		JobsFound:   &jobsFound,
		JobsMatched: &jobsMatched,
		AvgScore:    &matched.AvgScore,
		CompletedAt: &now,
	})
	if err != nil {
		o.log.Error("failed to complete run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}

	o.timeline(ctx, run, StepScanCompleted, map[string]any{
		"jobs_found":   jobsFound,
		"jobs_matched": jobsMatched,
	})

	o.log.Info("run completed",
		zap.String("run_id", run.ID.String()),
		zap.Int("jobs_found", jobsFound),
		zap.Int("jobs_matched", jobsMatched),
		zap.Float64("avg_score", matched.AvgScore))
}

// StopRun marks the owner's running run as stopped. In-flight stage work is
// not cancelled; its later terminal write wins (last-writer-wins is
// tolerated).
func (o *Orchestrator) StopRun(ctx context.Context, userID string) error {
	latest, err := o.store.FindLatestRun(ctx, userID, db.RunStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to find active run: %w", err)
	}
	if latest == nil {
		return ErrNoActiveRun
	}

	o.markTerminal(ctx, latest, db.RunStatusStopped, "stopped by user")
	o.timeline(ctx, latest, StepScanStopped, nil)
	return nil
}

// Run states reported by Status.
const (
	StateIdle    = "idle"
	StateRunning = "running"
)

// Status reports whether the owner has a live run. A stale running run is
// failed on read and reported as idle, mirroring the StartRun guard.
func (o *Orchestrator) Status(ctx context.Context, userID string) (string, error) {
	latest, err := o.store.FindLatestRun(ctx, userID, db.RunStatusRunning)
	if err != nil {
		return "", fmt.Errorf("failed to check run status: %w", err)
	}
	if latest == nil {
		return StateIdle, nil
	}

	if time.Since(latest.StartedAt) >= StaleRunThreshold {
		o.markTerminal(ctx, latest, db.RunStatusFailed, "run timed out (stale)")
		return StateIdle, nil
	}
	return StateRunning, nil
}

func (o *Orchestrator) markTerminal(ctx context.Context, run *db.Run, status, message string) {
	now := time.Now().UTC()
	err := o.store.UpdateRun(ctx, run.ID, db.RunUpdate{
		Status:      &status,
		CompletedAt: &now,
		AppendError: &message,
	})
	if err != nil {
		o.log.Error("failed to mark run terminal",
			zap.String("run_id", run.ID.String()),
			zap.String("status", status),
			zap.Error(err))
	}
}

// timeline appends an entry best-effort; a timeline failure never aborts the
// run.
func (o *Orchestrator) timeline(ctx context.Context, run *db.Run, step string, metadata map[string]any) {
	if err := o.store.AddTimelineEntry(ctx, run.UserID, &run.ID, step, metadata); err != nil {
		o.log.Warn("timeline write failed", zap.String("step", step), zap.Error(err))
	}
}
