package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daniel/jobscout/internal/db"
	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/sources"
	"github.com/daniel/jobscout/internal/types"
)

// fakeLLM returns canned responses keyed by model tier.
type fakeLLM struct {
	mu       sync.Mutex
	generate func(prompt string, tier llm.ModelTier) (string, error)
	calls    int
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.generate(prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

// fakeStore is an in-memory Store keyed by fingerprint.
type fakeStore struct {
	mu          sync.Mutex
	profile     *types.Profile
	jobs        map[string]*types.Job
	runs        []*db.Run
	timeline    []string
	insertCalls int

	findJobErr error
	insertErr  error
}

func newFakeStore(profile *types.Profile) *fakeStore {
	return &fakeStore{
		profile: profile,
		jobs:    make(map[string]*types.Job),
	}
}

func (s *fakeStore) FindJobByFingerprint(_ context.Context, _, fingerprint string) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findJobErr != nil {
		return nil, s.findJobErr
	}
	return s.jobs[fingerprint], nil
}

func (s *fakeStore) InsertJob(_ context.Context, job *types.Job) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.insertErr != nil {
		return "", s.insertErr
	}
	stored := *job
	s.jobs[job.Metadata.Fingerprint] = &stored
	return fmt.Sprintf("job-%d", s.insertCalls), nil
}

func (s *fakeStore) GetProfile(_ context.Context, _ string) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *fakeStore) CreateRun(_ context.Context, userID string, srcs []string) (*db.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := &db.Run{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    db.RunStatusRunning,
		Sources:   srcs,
		StartedAt: time.Now().UTC(),
	}
	s.runs = append(s.runs, run)
	return run, nil
}

func (s *fakeStore) UpdateRun(_ context.Context, id uuid.UUID, update db.RunUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, run := range s.runs {
		if run.ID != id {
			continue
		}
		if update.Status != nil {
			run.Status = *update.Status
		}
		if update.JobsFound != nil {
			run.JobsFound = *update.JobsFound
		}
		if update.JobsMatched != nil {
			run.JobsMatched = *update.JobsMatched
		}
		if update.AvgScore != nil {
			run.AvgScore = *update.AvgScore
		}
		if update.CompletedAt != nil {
			run.CompletedAt = update.CompletedAt
		}
		if update.AppendError != nil {
			run.Errors = append(run.Errors, *update.AppendError)
		}
		return nil
	}
	return fmt.Errorf("run %s not found", id)
}

func (s *fakeStore) FindLatestRun(_ context.Context, userID, status string) (*db.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *db.Run
	for _, run := range s.runs {
		if run.UserID != userID {
			continue
		}
		if status != "" && run.Status != status {
			continue
		}
		if latest == nil || run.StartedAt.After(latest.StartedAt) {
			latest = run
		}
	}
	return latest, nil
}

func (s *fakeStore) AddTimelineEntry(_ context.Context, _ string, _ *uuid.UUID, step string, _ map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline = append(s.timeline, step)
	return nil
}

// fakeAdapter returns fixed postings, or an error when failing is set.
type fakeAdapter struct {
	name     string
	postings []types.RawPosting
	failing  bool
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) Search(context.Context, sources.Query) ([]types.RawPosting, error) {
	if a.failing {
		return nil, fmt.Errorf("%s unavailable", a.name)
	}
	return a.postings, nil
}

// fastPolicy keeps retry sleeps out of the tests.
func fastPolicy() sources.Policy {
	return sources.Policy{MaxAttempts: 2, Delay: time.Millisecond, Backoff: 2.0}
}
