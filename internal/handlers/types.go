package handlers

import (
	"math"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// ============================================================================
// Delivery Fee
// ============================================================================

// FeeRequest is the query of GET /internal/delivery/fee
type FeeRequest struct {
	DistanceKm float64 `form:"distanceKm" json:"distanceKm"`
}

// FeeResponse is the tariff value for one distance
type FeeResponse struct {
	DistanceKm float64 `json:"distanceKm"`
	Fee        int64   `json:"fee"`
}

// QuoteStop is one restaurant in a quote request. Location is optional and is
// looked up by ID when absent.
type QuoteStop struct {
	RestaurantID string          `json:"restaurantId,omitempty"`
	Location     *geo.Coordinate `json:"location,omitempty"`
}

// QuoteRequest is the body of POST /internal/delivery/quote
type QuoteRequest struct {
	Destination *geo.Coordinate `json:"destination" binding:"required"`
	Restaurants []QuoteStop     `json:"restaurants" binding:"required,min=1,max=50"`
}

// QuoteLeg is the priced trip from one restaurant
type QuoteLeg struct {
	RestaurantID   string         `json:"restaurantId,omitempty"`
	Origin         geo.Coordinate `json:"origin"`
	DistanceMeters float64        `json:"distanceMeters"`
	DistanceKm     float64        `json:"distanceKm"`
	Fee            int64          `json:"fee"`
}

// QuoteResponse is the delivery fee for a cart
type QuoteResponse struct {
	Destination geo.Coordinate `json:"destination"`
	Fee         int64          `json:"fee"`
	Legs        []QuoteLeg     `json:"legs"`
}

func newQuoteResponse(q *pricing.Quote) QuoteResponse {
	resp := QuoteResponse{
		Destination: q.Destination,
		Fee:         q.Fee,
		Legs:        make([]QuoteLeg, 0, len(q.Legs)),
	}
	for _, leg := range q.Legs {
		resp.Legs = append(resp.Legs, QuoteLeg{
			RestaurantID:   leg.RestaurantID,
			Origin:         leg.Origin,
			DistanceMeters: leg.DistanceMeters,
			DistanceKm:     leg.DistanceKm,
			Fee:            leg.Fee,
		})
	}
	return resp
}

// ============================================================================
// Orders
// ============================================================================

// AvailableOrdersRequest is the query of GET /internal/orders/available
type AvailableOrdersRequest struct {
	SortBy string   `form:"sortBy" json:"sortBy,omitempty" jsonschema:"enum=createdAt,enum=deliveryFee,enum=arriveTime,enum=distance"`
	Order  string   `form:"order" json:"order,omitempty" jsonschema:"enum=asc,enum=desc"`
	Lon    *float64 `form:"lon" json:"lon,omitempty"`
	Lat    *float64 `form:"lat" json:"lat,omitempty"`
}

// RankOrdersRequest is the body of POST /internal/orders/rank
type RankOrdersRequest struct {
	Orders   []ranking.Order `json:"orders" binding:"required"`
	SortBy   string          `json:"sortBy,omitempty" jsonschema:"enum=createdAt,enum=deliveryFee,enum=arriveTime,enum=distance"`
	Order    string          `json:"order,omitempty" jsonschema:"enum=asc,enum=desc"`
	Position *geo.Coordinate `json:"position,omitempty"`
}

// RankedOrder is an order with the requester distance in meters. Distance is
// null when it was not computed or no restaurant in the order has a location.
type RankedOrder struct {
	ranking.Order
	Distance *float64 `json:"distance"`
}

// RankedOrdersResponse is a ranked order list
type RankedOrdersResponse struct {
	Orders []RankedOrder `json:"orders"`
	Total  int           `json:"total"`
	SortBy string        `json:"sortBy"`
	Order  string        `json:"order"`
}

func newRankedOrdersResponse(ranked []ranking.RankedOrder, opts ranking.Options) RankedOrdersResponse {
	resp := RankedOrdersResponse{
		Orders: make([]RankedOrder, 0, len(ranked)),
		Total:  len(ranked),
		SortBy: string(opts.SortBy),
		Order:  string(opts.Direction),
	}
	for _, r := range ranked {
		out := RankedOrder{Order: r.Order}
		if r.HasDistance() && !math.IsNaN(r.Distance) {
			d := r.Distance
			out.Distance = &d
		}
		resp.Orders = append(resp.Orders, out)
	}
	return resp
}

// OrderResponse wraps a single order
type OrderResponse struct {
	Order ranking.Order `json:"order"`
}

// ============================================================================
// Restaurants
// ============================================================================

// RestaurantRequest is the body of PUT /internal/restaurants/{restaurantId}
type RestaurantRequest struct {
	Name     string          `json:"name" binding:"required"`
	Location *geo.Coordinate `json:"location,omitempty"`
}

// RestaurantResponse echoes the stored restaurant
type RestaurantResponse struct {
	Restaurant ranking.RestaurantSnapshot `json:"restaurant"`
}
