package ranking

import (
	"fmt"
	"strings"
	"time"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPreparing  Status = "preparing"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// RestaurantSnapshot is the restaurant data frozen into an order line at placement.
type RestaurantSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Location *geo.Coordinate `json:"location,omitempty"` // [lon, lat]; nil when the restaurant has no geodata
}

// OrderItem is a single line of an order.
type OrderItem struct {
	MenuItemID string              `json:"menuItemId"`
	Name       string              `json:"name"`
	Price      int64               `json:"price"`
	Quantity   int                 `json:"quantity"`
	Restaurant *RestaurantSnapshot `json:"restaurant,omitempty"`
}

// Order is the subset of an order record the ranker and pricing flows need.
type Order struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	DeliveryPersonID *string         `json:"deliveryPersonId,omitempty"`
	Status           Status          `json:"status"`
	Items            []OrderItem     `json:"items"`
	DeliveryAddress  string          `json:"deliveryAddress,omitempty"`
	DeliveryLocation *geo.Coordinate `json:"deliveryLocation,omitempty"`
	DeliveryFee      int64           `json:"deliveryFee"` // Frozen at placement
	ItemsTotal       int64           `json:"itemsTotal"`
	ArriveTime       *time.Time      `json:"arriveTime,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// SortKey selects the scalar each order is reduced to for ranking.
type SortKey string

const (
	SortByCreatedAt   SortKey = "createdAt"
	SortByDeliveryFee SortKey = "deliveryFee"
	SortByArriveTime  SortKey = "arriveTime"
	SortByDistance    SortKey = "distance"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey parses a sort key. An empty string selects createdAt.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByCreatedAt, nil
	case SortByCreatedAt, SortByDeliveryFee, SortByArriveTime, SortByDistance:
		return SortKey(s), nil
	}
	return "", ErrInvalidOption{Field: "sortBy", Value: s}
}

// ParseDirection parses a direction case-insensitively. An empty string selects desc.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case "":
		return Desc, nil
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", ErrInvalidOption{Field: "order", Value: s}
}

// Options controls a ranking pass.
type Options struct {
	Position  *geo.Coordinate // Requester position; nil disables distance computation
	SortBy    SortKey
	Direction Direction
}

// RankedOrder is an order with its derived distance.
type RankedOrder struct {
	Order
	// Distance is the mean meters from the requester to the order's located
	// restaurants. +Inf when unknown.
	Distance float64 `json:"-"`
}

// HasDistance reports whether a finite distance was computed.
func (r RankedOrder) HasDistance() bool {
	return r.Distance >= 0 && r.Distance < inf
}

// ErrInvalidOption is returned for unrecognised sort options.
type ErrInvalidOption struct {
	Field string
	Value string
}

func (e ErrInvalidOption) Error() string {
	return fmt.Sprintf("%s: unsupported value %q", e.Field, e.Value)
}
