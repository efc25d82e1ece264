// Package orders persists orders and exposes the placement and availability flows.
package orders

import (
	"context"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// Store is the persistence boundary for orders and restaurant geodata.
type Store interface {
	// ListAvailable returns orders in status preparing with no courier, newest first.
	ListAvailable(ctx context.Context) ([]ranking.Order, error)

	// Get returns a single order or ErrNotFound.
	Get(ctx context.Context, id string) (*ranking.Order, error)

	// Create persists a new order with its line items.
	Create(ctx context.Context, order *ranking.Order) error

	// Restaurants returns snapshots for the given IDs. Unknown IDs are absent.
	Restaurants(ctx context.Context, ids []string) (map[string]ranking.RestaurantSnapshot, error)

	// UpsertRestaurant inserts or replaces a restaurant. Existing orders keep
	// their snapshot.
	UpsertRestaurant(ctx context.Context, r ranking.RestaurantSnapshot) error

	// RestaurantLocations returns the stored location per ID. Restaurants without
	// geodata map to nil; unknown IDs are absent.
	RestaurantLocations(ctx context.Context, ids []string) (map[string]*geo.Coordinate, error)

	// Ping checks the backing store.
	Ping(ctx context.Context) error
}
