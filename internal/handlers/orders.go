package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/orders"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// parseRankOptions builds ranking options from raw request values.
func parseRankOptions(sortBy, direction string, position *geo.Coordinate) (ranking.Options, error) {
	key, err := ranking.ParseSortKey(sortBy)
	if err != nil {
		return ranking.Options{}, err
	}
	dir, err := ranking.ParseDirection(direction)
	if err != nil {
		return ranking.Options{}, err
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return ranking.Options{}, err
		}
	}
	return ranking.Options{Position: position, SortBy: key, Direction: dir}, nil
}

// positionFromQuery reads lon and lat. Both or neither must be present.
func positionFromQuery(c *gin.Context) (*geo.Coordinate, error) {
	rawLon, hasLon := c.GetQuery("lon")
	rawLat, hasLat := c.GetQuery("lat")
	if !hasLon && !hasLat {
		return nil, nil
	}
	if !hasLon || !hasLat {
		return nil, pricing.ErrInvalidRequest{Field: "lon,lat", Reason: "must be given together"}
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, pricing.ErrInvalidRequest{Field: "lon", Reason: "must be a number"}
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, pricing.ErrInvalidRequest{Field: "lat", Reason: "must be a number"}
	}
	p := geo.NewCoordinate(lon, lat)
	return &p, nil
}

// ListAvailableOrders returns the ranked pool of unclaimed orders
// @Summary List available orders
// @Description Returns orders in status preparing without a courier, ranked by the requested key. Orders missing the sort value are listed last.
// @Tags orders
// @Produce json
// @Param sortBy query string false "Sort key" Enums(createdAt, deliveryFee, arriveTime, distance) default(createdAt)
// @Param order query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param lon query number false "Requester longitude"
// @Param lat query number false "Requester latitude"
// @Success 200 {object} RankedOrdersResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 503 {object} map[string]string "Order store unavailable"
// @Router /internal/orders/available [get]
func (h *Handler) ListAvailableOrders(c *gin.Context) {
	if !h.requireOrders(c) {
		return
	}

	position, err := positionFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	opts, err := parseRankOptions(c.Query("sortBy"), c.Query("order"), position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ranked, err := h.orders.AvailableOrders(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRankedOrdersResponse(ranked, opts))
}

// RankOrders ranks caller-supplied orders
// @Summary Rank orders
// @Description Ranks the given orders without touching the order store
// @Tags orders
// @Accept json
// @Produce json
// @Param request body RankOrdersRequest true "Orders and sort options"
// @Success 200 {object} RankedOrdersResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/orders/rank [post]
func (h *Handler) RankOrders(c *gin.Context) {
	var req RankOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := parseRankOptions(req.SortBy, req.Order, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRankedOrdersResponse(h.ranker.Rank(req.Orders, opts), opts))
}

// PlaceOrder creates an order with a frozen delivery fee
// @Summary Place an order
// @Description Snapshots each restaurant, quotes the delivery fee once and stores the order in status preparing
// @Tags orders
// @Accept json
// @Produce json
// @Param request body orders.PlaceOrderInput true "Order"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 422 {object} map[string]string "Unknown restaurant"
// @Failure 503 {object} map[string]string "Order store unavailable"
// @Router /internal/orders [post]
func (h *Handler) PlaceOrder(c *gin.Context) {
	if !h.requireOrders(c) {
		return
	}

	var in orders.PlaceOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, OrderResponse{Order: *order})
}

// GetOrder returns a single order
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 503 {object} map[string]string "Order store unavailable"
// @Router /internal/orders/{orderId} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	if !h.requireOrders(c) {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{Order: *order})
}
