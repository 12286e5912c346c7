package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/types"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got := Retry(context.Background(), zap.NewNop(), "test", DefaultPolicy(), func(context.Context) ([]types.RawPosting, error) {
		calls++
		return []types.RawPosting{{"title": "Engineer"}}, nil
	})

	assert.Equal(t, 1, calls)
	assert.Len(t, got, 1)
}

func TestRetryRecoversAfterFailure(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Delay: time.Millisecond, Backoff: 2.0}
	calls := 0
	got := Retry(context.Background(), zap.NewNop(), "test", policy, func(context.Context) ([]types.RawPosting, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("boom")
		}
		return []types.RawPosting{{"title": "Engineer"}}, nil
	})

	assert.Equal(t, 3, calls)
	assert.Len(t, got, 1)
}

func TestRetryExhaustionReturnsEmpty(t *testing.T) {
	policy := Policy{MaxAttempts: 4, Delay: time.Millisecond, Backoff: 2.0}
	calls := 0

	start := time.Now()
	got := Retry(context.Background(), zap.NewNop(), "test", policy, func(context.Context) ([]types.RawPosting, error) {
		calls++
		return nil, errors.New("always fails")
	})
	elapsed := time.Since(start)

	assert.Equal(t, policy.MaxAttempts, calls, "adapter invoked exactly MaxAttempts times")
	assert.Nil(t, got, "exhaustion degrades to empty result")

	// Total sleep is delay * (1 + backoff + backoff^2) = 1ms + 2ms + 4ms.
	assert.GreaterOrEqual(t, elapsed, 7*time.Millisecond)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{MaxAttempts: 10, Delay: time.Hour, Backoff: 2.0}
	calls := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	got := Retry(ctx, zap.NewNop(), "test", policy, func(context.Context) ([]types.RawPosting, error) {
		calls++
		return nil, errors.New("boom")
	})

	assert.Equal(t, 1, calls, "cancellation interrupts the backoff sleep")
	assert.Nil(t, got)
}

func TestRetryZeroAttemptsClamped(t *testing.T) {
	calls := 0
	Retry(context.Background(), zap.NewNop(), "test", Policy{}, func(context.Context) ([]types.RawPosting, error) {
		calls++
		return nil, errors.New("boom")
	})
	assert.Equal(t, 1, calls)
}
