package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daniel/jobscout/internal/sources"
	"github.com/daniel/jobscout/internal/types"
)

// Scout fans out one adapter invocation per enabled source and joins all of
// them before returning. Adapter failures are absorbed by the retry wrapper,
// so a failing source contributes an empty slice, never an error.
type Scout struct {
	registry sources.Registry
	policy   sources.Policy
	log      *zap.Logger
}

func NewScout(registry sources.Registry, policy sources.Policy, log *zap.Logger) *Scout {
	return &Scout{registry: registry, policy: policy, log: log}
}

// Collect runs all enabled sources concurrently and concatenates their raw
// postings. Unknown source tags are skipped with a warning.
func (s *Scout) Collect(ctx context.Context, in ScoutInput) ScoutOutput {
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var all []types.RawPosting

	for _, name := range in.Sources {
		adapter := s.registry.Get(name)
		if adapter == nil {
			s.log.Warn("skipping unknown source", zap.String("source", name))
			continue
		}

		name := name
		g.Go(func() error {
			postings := sources.Retry(gCtx, s.log, name, s.policy, func(ctx context.Context) ([]types.RawPosting, error) {
				return adapter.Search(ctx, in.Query)
			})
			for _, p := range postings {
				p["scraped_from"] = name
			}

			mu.Lock()
			all = append(all, postings...)
			mu.Unlock()
			return nil
		})
	}

	// The goroutines never return errors; Retry degrades failures to empty.
	_ = g.Wait()

	s.log.Info("scout collected postings",
		zap.Int("sources", len(in.Sources)),
		zap.Int("postings", len(all)))

	return ScoutOutput{RawPostings: all}
}
