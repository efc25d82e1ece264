package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
)

// LocationSource resolves restaurant coordinates by ID.
type LocationSource interface {
	// RestaurantLocations returns the known location for each ID. IDs without a
	// stored location are either absent from the map or mapped to nil.
	RestaurantLocations(ctx context.Context, ids []string) (map[string]*geo.Coordinate, error)
}

// Stop is one restaurant the courier must visit. Location may be nil, in which case
// it is looked up by RestaurantID.
type Stop struct {
	RestaurantID string
	Location     *geo.Coordinate
}

// Leg is the priced trip from one restaurant to the delivery destination.
type Leg struct {
	RestaurantID   string
	Origin         geo.Coordinate
	DistanceMeters float64
	DistanceKm     float64
	Fee            int64
}

// Quote is the delivery fee for a whole cart.
type Quote struct {
	Destination geo.Coordinate
	Legs        []Leg
	Fee         int64 // Sum of leg fees
}

// Quoter prices carts against the tiered tariff.
type Quoter struct {
	locations LocationSource
	metrics   *MetricsRecorder
	logger    zerolog.Logger
}

// NewQuoter creates a quoter. locations may be nil if every stop carries a location.
func NewQuoter(locations LocationSource, metrics *MetricsRecorder) *Quoter {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Quoter{
		locations: locations,
		metrics:   metrics,
		logger:    log.With().Str("component", "fee_quoter").Logger(),
	}
}

// Quote prices each distinct restaurant stop against the destination and sums the fees.
func (q *Quoter) Quote(ctx context.Context, destination geo.Coordinate, stops []Stop) (quote *Quote, err error) {
	start := time.Now()
	defer func() {
		q.metrics.RecordQuote(quoteResult(err), time.Since(start))
	}()

	if len(stops) == 0 {
		return nil, ErrInvalidRequest{Field: "restaurants", Reason: "must have at least one restaurant"}
	}

	stops = dedupeStops(stops)

	resolved, err := q.resolve(ctx, stops)
	if err != nil {
		return nil, err
	}

	quote = &Quote{
		Destination: destination,
		Legs:        make([]Leg, 0, len(resolved)),
	}
	for _, s := range resolved {
		meters := geo.Distance(*s.Location, destination)
		km := geo.MetersToKm(meters)
		if err := Validate(km); err != nil {
			return nil, err
		}

		leg := Leg{
			RestaurantID:   s.RestaurantID,
			Origin:         *s.Location,
			DistanceMeters: meters,
			DistanceKm:     km,
			Fee:            DeliveryFeeForMeters(meters),
		}
		q.metrics.RecordLeg(km)
		quote.Legs = append(quote.Legs, leg)
		quote.Fee += leg.Fee
	}

	q.metrics.RecordFee(quote.Fee)
	q.logger.Debug().
		Int("legs", len(quote.Legs)).
		Int64("fee", quote.Fee).
		Str("destination", destination.String()).
		Msg("Quoted delivery fee")

	return quote, nil
}

// resolve fills in missing stop locations from the location source.
func (q *Quoter) resolve(ctx context.Context, stops []Stop) ([]Stop, error) {
	var missing []string
	for i, s := range stops {
		if s.Location != nil {
			continue
		}
		if s.RestaurantID == "" {
			return nil, ErrInvalidRequest{
				Field:  "restaurants",
				Reason: fmt.Sprintf("restaurant at index %d has neither id nor location", i),
			}
		}
		missing = append(missing, s.RestaurantID)
	}
	if len(missing) == 0 {
		return stops, nil
	}
	if q.locations == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRestaurant, missing[0])
	}

	found, err := q.locations.RestaurantLocations(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to look up restaurant locations: %w", err)
	}

	out := make([]Stop, len(stops))
	for i, s := range stops {
		if s.Location == nil {
			loc := found[s.RestaurantID]
			if loc == nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownRestaurant, s.RestaurantID)
			}
			s.Location = loc
		}
		out[i] = s
	}
	return out, nil
}

// dedupeStops keeps the first stop per restaurant ID. Stops without an ID are kept as-is.
func dedupeStops(stops []Stop) []Stop {
	seen := make(map[string]struct{}, len(stops))
	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if s.RestaurantID != "" {
			if _, ok := seen[s.RestaurantID]; ok {
				continue
			}
			seen[s.RestaurantID] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

func quoteResult(err error) string {
	var invalidReq ErrInvalidRequest
	var invalidDist ErrInvalidDistance
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &invalidReq), errors.As(err, &invalidDist):
		return "invalid"
	case errors.Is(err, ErrUnknownRestaurant):
		return "unknown_restaurant"
	default:
		return "error"
	}
}
