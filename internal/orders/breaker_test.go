package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(maxFailures, halfOpen int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("test", BreakerConfig{
		MaxFailures:      maxFailures,
		ResetTimeout:     10 * time.Second,
		HalfOpenMaxCalls: halfOpen,
	}, nil, zerolog.Nop())
	cb.now = clock.Now
	return cb, clock
}

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, 1)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		require.True(t, cb.Allow())
		cb.RecordFailure(boom)
	}
	assert.Equal(t, BreakerClosed, cb.State())

	// A success resets the consecutive count.
	cb.RecordSuccess()
	for i := 0; i < 2; i++ {
		cb.RecordFailure(boom)
	}
	assert.Equal(t, BreakerClosed, cb.State())

	cb.RecordFailure(boom)
	assert.Equal(t, BreakerOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)
	cb.RecordFailure(errors.New("boom"))
	require.Equal(t, BreakerOpen, cb.State())

	clock.Advance(5 * time.Second)
	assert.False(t, cb.Allow(), "still inside reset timeout")

	clock.Advance(5 * time.Second)
	assert.True(t, cb.Allow())
	assert.Equal(t, BreakerHalfOpen, cb.State())
	assert.True(t, cb.Allow())
	assert.False(t, cb.Allow(), "trial calls are capped")

	cb.RecordSuccess()
	assert.Equal(t, BreakerHalfOpen, cb.State())
	cb.RecordSuccess()
	assert.Equal(t, BreakerClosed, cb.State())
	assert.True(t, cb.Allow())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, 1)
	cb.RecordFailure(errors.New("boom"))
	clock.Advance(10 * time.Second)

	require.True(t, cb.Allow())
	cb.RecordFailure(errors.New("still down"))
	assert.Equal(t, BreakerOpen, cb.State())
	assert.False(t, cb.Allow())

	cb.Reset()
	assert.Equal(t, BreakerClosed, cb.State())
}

func TestBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half-open", BreakerHalfOpen.String())
	assert.Equal(t, "unknown", BreakerState(9).String())
}

func TestGuardedStoreFailsFast(t *testing.T) {
	boom := errors.New("connection refused")
	inner := &failingStore{MemoryStore: NewMemoryStore(), err: boom}
	cb, _ := newTestBreaker(2, 1)
	store := NewGuardedStore(inner, cb, nil)
	ctx := context.Background()

	_, err := store.ListAvailable(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = store.ListAvailable(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = store.ListAvailable(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, store.Ping(ctx), ErrStoreUnavailable)
}

func TestGuardedStoreIgnoresNotFound(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)
	store := NewGuardedStore(NewMemoryStore(), cb, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Get(ctx, "ord_missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, BreakerClosed, cb.State())
	assert.NoError(t, store.Ping(ctx))
}
