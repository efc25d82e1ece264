package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://app:secret@db:5432/delivery", "postgres://app:xxxxx@db:5432/delivery"},
		{"postgres://app@db:5432/delivery", "postgres://app@db:5432/delivery"},
		{"host=db user=app", "host=db user=app"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Redact(tt.in))
	}
}

func TestStatusBeforeConnect(t *testing.T) {
	Close()
	assert.Nil(t, Pool())
	assert.Nil(t, Stats())
	assert.ErrorIs(t, Status(context.Background()), ErrNotConnected)
}

func TestNewPoolRejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", PoolOptions{})
	assert.Error(t, err)
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{10, time.Second},
	}
	for _, tt := range tests {
		got := cfg.Backoff(tt.attempt)
		assert.GreaterOrEqual(t, got, tt.base)
		assert.LessOrEqual(t, got, tt.base+tt.base/4)
	}
}

func TestConnectWithRetryGivesUp(t *testing.T) {
	Close()
	cfg := RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}

	err := ConnectWithRetry(context.Background(), "postgres://%zz", PoolOptions{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Nil(t, Pool())
}

func TestConnectWithRetryStopsOnCancel(t *testing.T) {
	Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := RetryConfig{MaxAttempts: 3, InitialBackoff: time.Hour, MaxBackoff: time.Hour}

	err := ConnectWithRetry(ctx, "postgres://%zz", PoolOptions{}, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
