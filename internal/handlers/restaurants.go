package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// UpsertRestaurant registers or updates a restaurant used for quoting
// @Summary Register a restaurant
// @Description Stores the restaurant name and location. Orders already placed keep their snapshot.
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Param request body RestaurantRequest true "Restaurant"
// @Success 200 {object} RestaurantResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 503 {object} map[string]string "Order store unavailable"
// @Router /internal/restaurants/{restaurantId} [put]
func (h *Handler) UpsertRestaurant(c *gin.Context) {
	if !h.requireOrders(c) {
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := ranking.RestaurantSnapshot{
		ID:       c.Param("restaurantId"),
		Name:     req.Name,
		Location: req.Location,
	}
	if err := h.orders.UpsertRestaurant(c.Request.Context(), restaurant); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RestaurantResponse{Restaurant: restaurant})
}
