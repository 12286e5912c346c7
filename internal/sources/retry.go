package sources

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/types"
)

// Policy bounds the retry behavior around one adapter call.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     float64
}

// DefaultPolicy matches the per-adapter retry budget used for scraping runs.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 2, Delay: time.Second, Backoff: 2.0}
}

// Retry invokes fn up to policy.MaxAttempts times with exponential backoff
// between attempts. On exhaustion it returns an empty result rather than an
// error: source failures degrade the run, they never abort it. Each failed
// attempt is logged with the source identity for observability.
func Retry(ctx context.Context, log *zap.Logger, source string, policy Policy, fn func(context.Context) ([]types.RawPosting, error)) []types.RawPosting {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	delay := policy.Delay
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		postings, err := fn(ctx)
		if err == nil {
			return postings
		}

		log.Warn("source attempt failed",
			zap.String("source", source),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", policy.MaxAttempts),
			zap.Error(err),
		)

		if attempt == policy.MaxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			log.Warn("source retry canceled", zap.String("source", source), zap.Error(ctx.Err()))
			return nil
		}
		delay = time.Duration(float64(delay) * policy.Backoff)
	}

	log.Warn("source exhausted retries, degrading to empty result",
		zap.String("source", source),
		zap.Int("attempts", policy.MaxAttempts),
	)
	return nil
}
