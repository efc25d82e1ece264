package orders

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	orders      map[string]ranking.Order
	restaurants map[string]ranking.RestaurantSnapshot
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:      make(map[string]ranking.Order),
		restaurants: make(map[string]ranking.RestaurantSnapshot),
	}
}

// UpsertRestaurant inserts or replaces a restaurant.
func (m *MemoryStore) UpsertRestaurant(_ context.Context, r ranking.RestaurantSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
	return nil
}

func (m *MemoryStore) ListAvailable(_ context.Context) ([]ranking.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ranking.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.Status == ranking.StatusPreparing && o.DeliveryPersonID == nil {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*ranking.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (m *MemoryStore) Create(_ context.Context, order *ranking.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (m *MemoryStore) Restaurants(_ context.Context, ids []string) (map[string]ranking.RestaurantSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]ranking.RestaurantSnapshot, len(ids))
	for _, id := range ids {
		if r, ok := m.restaurants[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (m *MemoryStore) RestaurantLocations(ctx context.Context, ids []string) (map[string]*geo.Coordinate, error) {
	restaurants, _ := m.Restaurants(ctx, ids)
	out := make(map[string]*geo.Coordinate, len(restaurants))
	for id, r := range restaurants {
		out[id] = r.Location
	}
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// cloneOrder copies the slices and pointers an order shares with its caller.
func cloneOrder(o ranking.Order) ranking.Order {
	o.Items = slices.Clone(o.Items)
	for i, item := range o.Items {
		if item.Restaurant != nil {
			r := *item.Restaurant
			r.Location = cloneCoordinate(r.Location)
			o.Items[i].Restaurant = &r
		}
	}
	o.DeliveryLocation = cloneCoordinate(o.DeliveryLocation)
	return o
}

func cloneCoordinate(c *geo.Coordinate) *geo.Coordinate {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
