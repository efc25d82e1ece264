package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/pkg/cuid2"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// OrderIDPrefix prefixes every order ID.
const OrderIDPrefix = "ord"

// ItemInput is one requested line of a new order.
type ItemInput struct {
	MenuItemID   string `json:"menuItemId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
	RestaurantID string `json:"restaurantId"`
}

// PlaceOrderInput is the data needed to place an order.
type PlaceOrderInput struct {
	CustomerID       string          `json:"customerId"`
	Items            []ItemInput     `json:"items"`
	DeliveryAddress  string          `json:"deliveryAddress"`
	DeliveryLocation *geo.Coordinate `json:"deliveryLocation"` // [lon, lat]
	ArriveTime       *time.Time      `json:"arriveTime,omitempty"`
}

// Validate checks the input independently of any binding layer.
func (in PlaceOrderInput) Validate() error {
	if in.CustomerID == "" {
		return pricing.ErrInvalidRequest{Field: "customerId", Reason: "is required"}
	}
	if len(in.Items) == 0 {
		return pricing.ErrInvalidRequest{Field: "items", Reason: "must have at least one item"}
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case item.MenuItemID == "":
			return pricing.ErrInvalidRequest{Field: field + ".menuItemId", Reason: "is required"}
		case item.RestaurantID == "":
			return pricing.ErrInvalidRequest{Field: field + ".restaurantId", Reason: "is required"}
		case item.Quantity < 1:
			return pricing.ErrInvalidRequest{Field: field + ".quantity", Reason: "must be at least 1"}
		case item.Price < 0:
			return pricing.ErrInvalidRequest{Field: field + ".price", Reason: "must not be negative"}
		}
	}
	if in.DeliveryLocation == nil {
		return pricing.ErrInvalidRequest{Field: "deliveryLocation", Reason: "is required"}
	}
	if err := in.DeliveryLocation.Validate(); err != nil {
		return pricing.ErrInvalidRequest{Field: "deliveryLocation", Reason: err.Error()}
	}
	return nil
}

// Service implements order placement and the courier availability view.
type Service struct {
	store   Store
	quoter  *pricing.Quoter
	ranker  *ranking.Ranker
	metrics *MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a service. The quoter should resolve locations through the same store.
func NewService(store Store, quoter *pricing.Quoter, ranker *ranking.Ranker, metrics *MetricsRecorder) *Service {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	if quoter == nil {
		quoter = pricing.NewQuoter(store, nil)
	}
	return &Service{
		store:   store,
		quoter:  quoter,
		ranker:  ranker,
		metrics: metrics,
		logger:  log.With().Str("component", "order_service").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return cuid2.New(OrderIDPrefix) },
	}
}

// PlaceOrder validates the input, snapshots each restaurant, prices the delivery
// once and persists the order in status preparing. The fee is frozen on the order.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*ranking.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]struct{}, len(in.Items))
	for _, item := range in.Items {
		if _, ok := seen[item.RestaurantID]; ok {
			continue
		}
		seen[item.RestaurantID] = struct{}{}
		ids = append(ids, item.RestaurantID)
	}

	restaurants, err := s.store.Restaurants(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	stops := make([]pricing.Stop, 0, len(ids))
	for _, id := range ids {
		r, ok := restaurants[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRestaurant, id)
		}
		stops = append(stops, pricing.Stop{RestaurantID: id, Location: r.Location})
	}

	quote, err := s.quoter.Quote(ctx, *in.DeliveryLocation, stops)
	if err != nil {
		return nil, fmt.Errorf("failed to quote delivery: %w", err)
	}

	destination := *in.DeliveryLocation
	order := &ranking.Order{
		ID:               s.newID(),
		CustomerID:       in.CustomerID,
		Status:           ranking.StatusPreparing,
		Items:            make([]ranking.OrderItem, 0, len(in.Items)),
		DeliveryAddress:  in.DeliveryAddress,
		DeliveryLocation: &destination,
		DeliveryFee:      quote.Fee,
		ArriveTime:       in.ArriveTime,
		CreatedAt:        s.now(),
	}
	for _, item := range in.Items {
		snapshot := restaurants[item.RestaurantID]
		order.Items = append(order.Items, ranking.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Restaurant: &snapshot,
		})
		order.ItemsTotal += item.Price * int64(item.Quantity)
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.metrics.RecordOrderPlaced()
	s.logger.Info().
		Str("order_id", order.ID).
		Str("customer_id", order.CustomerID).
		Int("items", len(order.Items)).
		Int64("delivery_fee", order.DeliveryFee).
		Msg("Order placed")

	return order, nil
}

// AvailableOrders returns the unclaimed order pool ranked by opts.
func (s *Service) AvailableOrders(ctx context.Context, opts ranking.Options) ([]ranking.RankedOrder, error) {
	pool, err := s.store.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available orders: %w", err)
	}
	return s.ranker.Rank(pool, opts), nil
}

// UpsertRestaurant registers or updates a restaurant. A nil location is allowed;
// such a restaurant cannot be quoted until it gets one.
func (s *Service) UpsertRestaurant(ctx context.Context, r ranking.RestaurantSnapshot) error {
	if r.ID == "" {
		return pricing.ErrInvalidRequest{Field: "id", Reason: "is required"}
	}
	if r.Name == "" {
		return pricing.ErrInvalidRequest{Field: "name", Reason: "is required"}
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return pricing.ErrInvalidRequest{Field: "location", Reason: err.Error()}
		}
	}
	if err := s.store.UpsertRestaurant(ctx, r); err != nil {
		return fmt.Errorf("failed to save restaurant %s: %w", r.ID, err)
	}
	s.logger.Info().
		Str("restaurant_id", r.ID).
		Bool("has_location", r.Location != nil).
		Msg("Restaurant saved")
	return nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id string) (*ranking.Order, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return order, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
