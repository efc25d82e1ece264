package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	ChatRooms int    `json:"chatRooms"`
}

// Health handles the health check endpoint
// @Summary Health check
// @Description Reports service and database status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		ChatRooms: h.chat.Rooms(),
	}

	if h.database == nil {
		response.Database = "not configured"
		c.JSON(http.StatusOK, response)
		return
	}

	if err := h.database.Ping(c.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Health check database ping failed")
		response.Status = "degraded"
		response.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	response.Database = "connected"
	c.JSON(http.StatusOK, response)
}
