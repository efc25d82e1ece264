package orders

import (
	"errors"

	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
)

var (
	// ErrNotFound is returned when an order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrUnknownRestaurant is returned when an order references a restaurant that
	// does not exist or cannot be located.
	ErrUnknownRestaurant = pricing.ErrUnknownRestaurant

	// ErrStoreUnavailable is returned while the store circuit breaker is open.
	ErrStoreUnavailable = errors.New("order store unavailable")
)
