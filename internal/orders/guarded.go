package orders

import (
	"context"
	"errors"
	"time"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// GuardedStore wraps a Store with a circuit breaker and operation metrics.
type GuardedStore struct {
	next    Store
	breaker *CircuitBreaker
	metrics *MetricsRecorder
}

// NewGuardedStore wraps next. Calls fail fast with ErrStoreUnavailable while the
// breaker is open.
func NewGuardedStore(next Store, breaker *CircuitBreaker, metrics *MetricsRecorder) *GuardedStore {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &GuardedStore{next: next, breaker: breaker, metrics: metrics}
}

// call runs fn under the breaker. Caller errors (not found, cancellation) do not
// count as store failures.
func (g *GuardedStore) call(ctx context.Context, operation string, fn func(context.Context) error) error {
	if !g.breaker.Allow() {
		g.metrics.RecordOperation(operation, "rejected", 0)
		return ErrStoreUnavailable
	}

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	switch {
	case err == nil:
		g.breaker.RecordSuccess()
		g.metrics.RecordOperation(operation, "ok", duration)
	case errors.Is(err, ErrNotFound), errors.Is(err, context.Canceled):
		g.breaker.RecordSuccess()
		g.metrics.RecordOperation(operation, "client_error", duration)
	default:
		g.breaker.RecordFailure(err)
		g.metrics.RecordOperation(operation, "error", duration)
	}
	return err
}

func (g *GuardedStore) ListAvailable(ctx context.Context) (out []ranking.Order, err error) {
	err = g.call(ctx, "list_available", func(ctx context.Context) error {
		out, err = g.next.ListAvailable(ctx)
		return err
	})
	return out, err
}

func (g *GuardedStore) Get(ctx context.Context, id string) (out *ranking.Order, err error) {
	err = g.call(ctx, "get", func(ctx context.Context) error {
		out, err = g.next.Get(ctx, id)
		return err
	})
	return out, err
}

func (g *GuardedStore) Create(ctx context.Context, order *ranking.Order) error {
	return g.call(ctx, "create", func(ctx context.Context) error {
		return g.next.Create(ctx, order)
	})
}

func (g *GuardedStore) Restaurants(ctx context.Context, ids []string) (out map[string]ranking.RestaurantSnapshot, err error) {
	err = g.call(ctx, "restaurants", func(ctx context.Context) error {
		out, err = g.next.Restaurants(ctx, ids)
		return err
	})
	return out, err
}

func (g *GuardedStore) UpsertRestaurant(ctx context.Context, r ranking.RestaurantSnapshot) error {
	return g.call(ctx, "upsert_restaurant", func(ctx context.Context) error {
		return g.next.UpsertRestaurant(ctx, r)
	})
}

func (g *GuardedStore) RestaurantLocations(ctx context.Context, ids []string) (out map[string]*geo.Coordinate, err error) {
	err = g.call(ctx, "restaurant_locations", func(ctx context.Context) error {
		out, err = g.next.RestaurantLocations(ctx, ids)
		return err
	})
	return out, err
}

func (g *GuardedStore) Ping(ctx context.Context) error {
	return g.call(ctx, "ping", g.next.Ping)
}
