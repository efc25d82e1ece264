package database

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig bounds connection attempts at startup.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
	}
}

// Backoff returns the delay before retry number attempt (0-based): exponential,
// capped at MaxBackoff, plus up to 25% jitter.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	delay := float64(c.InitialBackoff) * math.Pow(2, float64(attempt))
	delay = math.Min(delay, float64(c.MaxBackoff))
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}

// ConnectWithRetry calls Connect until it succeeds, ctx is done, or the attempts
// run out.
func ConnectWithRetry(ctx context.Context, connString string, opts PoolOptions, retry RetryConfig) error {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < retry.MaxAttempts; attempt++ {
		if lastErr = Connect(ctx, connString, opts); lastErr == nil {
			return nil
		}
		if attempt == retry.MaxAttempts-1 {
			break
		}

		delay := retry.Backoff(attempt)
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt+1).
			Int("max_attempts", retry.MaxAttempts).
			Dur("backoff", delay).
			Msg("Database connection failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("database connect cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", retry.MaxAttempts, lastErr)
}
