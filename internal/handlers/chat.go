package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatSocket upgrades to a websocket and joins the order's chat room
// @Summary Order chat
// @Description Upgrades to a websocket relaying messages between everyone connected to the order
// @Tags chat
// @Param orderId path string true "Order ID"
// @Param sender query string true "Display name of the participant"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Order not found"
// @Router /ws/orders/{orderId}/chat [get]
func (h *Handler) ChatSocket(c *gin.Context) {
	orderID := c.Param("orderId")
	sender := c.Query("sender")
	if sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender is required"})
		return
	}

	if h.orders != nil {
		if _, err := h.orders.Get(c.Request.Context(), orderID); err != nil {
			h.respondError(c, err)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug().Err(err).Str("order_id", orderID).Msg("Websocket upgrade failed")
		return
	}

	if err := h.chat.Serve(c.Request.Context(), conn, orderID, sender, h.chatOpts); err != nil {
		h.logger.Warn().Err(err).
			Str("order_id", orderID).
			Str("sender", sender).
			Msg("Chat session ended with error")
	}
}
