package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
)

// GetFee returns the tariff fee for a distance
// @Summary Delivery fee for a distance
// @Description Applies the tiered delivery tariff to a distance in kilometres
// @Tags delivery
// @Produce json
// @Param distanceKm query number true "Distance in kilometres" minimum(0)
// @Success 200 {object} FeeResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/delivery/fee [get]
func (h *Handler) GetFee(c *gin.Context) {
	raw := c.Query("distanceKm")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distanceKm is required"})
		return
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distanceKm must be a number"})
		return
	}
	if err := pricing.Validate(km); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeeResponse{DistanceKm: km, Fee: pricing.DeliveryFee(km)})
}

// QuoteFee prices a cart
// @Summary Quote delivery for a cart
// @Description Sums the tariff fee of each restaurant-to-destination leg. Restaurants without a location are looked up by ID.
// @Tags delivery
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Destination and restaurants"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 422 {object} map[string]string "Unknown restaurant"
// @Failure 503 {object} map[string]string "Order store unavailable"
// @Router /internal/delivery/quote [post]
func (h *Handler) QuoteFee(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Destination.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	stops := make([]pricing.Stop, 0, len(req.Restaurants))
	for _, r := range req.Restaurants {
		if r.Location != nil {
			if err := r.Location.Validate(); err != nil {
				h.respondError(c, err)
				return
			}
		}
		stops = append(stops, pricing.Stop{RestaurantID: r.RestaurantID, Location: r.Location})
	}

	quote, err := h.quoter.Quote(c.Request.Context(), *req.Destination, stops)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newQuoteResponse(quote))
}
