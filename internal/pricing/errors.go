package pricing

import (
	"errors"
	"fmt"
)

// ErrUnknownRestaurant is returned when a quote stop cannot be located.
var ErrUnknownRestaurant = errors.New("restaurant location unknown")

// ErrInvalidDistance is returned for negative or non-finite distances.
type ErrInvalidDistance struct {
	Distance float64
}

func (e ErrInvalidDistance) Error() string {
	return fmt.Sprintf("invalid distance %v km: must be finite and non-negative", e.Distance)
}

// ErrInvalidRequest is returned when a quote request is malformed.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}
