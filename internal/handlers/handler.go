package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/howard522/eating-at-ntou-sub000/internal/chat"
	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/orders"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the HTTP handlers call into.
type Deps struct {
	Orders      *orders.Service
	Quoter      *pricing.Quoter
	Ranker      *ranking.Ranker
	Chat        *chat.Registry
	ChatOptions chat.Options
	// AllowedOrigins restricts websocket upgrades. Empty means same host only;
	// "*" allows any origin.
	AllowedOrigins []string
	// Database is nil when the service runs without Postgres.
	Database Pinger
}

// Handler serves the delivery API.
type Handler struct {
	orders   *orders.Service
	quoter   *pricing.Quoter
	ranker   *ranking.Ranker
	chat     *chat.Registry
	chatOpts chat.Options
	upgrader websocket.Upgrader
	database Pinger
	logger   zerolog.Logger
}

// New creates a handler.
func New(deps Deps) *Handler {
	if deps.Ranker == nil {
		deps.Ranker = ranking.NewRanker(nil)
	}
	if deps.Quoter == nil {
		deps.Quoter = pricing.NewQuoter(nil, nil)
	}
	if deps.Chat == nil {
		deps.Chat = chat.NewRegistry(nil)
	}
	if deps.ChatOptions == (chat.Options{}) {
		deps.ChatOptions = chat.DefaultOptions()
	}
	return &Handler{
		orders:   deps.Orders,
		quoter:   deps.Quoter,
		ranker:   deps.Ranker,
		chat:     deps.Chat,
		chatOpts: deps.ChatOptions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(deps.AllowedOrigins),
		},
		database: deps.Database,
		logger:   log.With().Str("component", "http_handlers").Logger(),
	}
}

// RegisterRoutes mounts every endpoint. internal guards the /internal group.
func (h *Handler) RegisterRoutes(router gin.IRouter, internal ...gin.HandlerFunc) {
	router.GET("/health", h.Health)
	router.GET("/ws/orders/:orderId/chat", h.ChatSocket)

	api := router.Group("/internal", internal...)
	{
		api.GET("/health", h.Health)

		delivery := api.Group("/delivery")
		{
			delivery.GET("/fee", h.GetFee)
			delivery.POST("/quote", h.QuoteFee)
		}

		ordersGroup := api.Group("/orders")
		{
			ordersGroup.GET("/available", h.ListAvailableOrders)
			ordersGroup.POST("/rank", h.RankOrders)
			ordersGroup.POST("", h.PlaceOrder)
			ordersGroup.GET("/:orderId", h.GetOrder)
		}

		api.PUT("/restaurants/:restaurantId", h.UpsertRestaurant)
	}
}

// respondError maps domain errors to HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		invalidReq  pricing.ErrInvalidRequest
		invalidDist pricing.ErrInvalidDistance
		invalidOpt  ranking.ErrInvalidOption
		outOfRange  geo.ErrOutOfRange
	)

	switch {
	case errors.As(err, &invalidReq), errors.As(err, &invalidDist),
		errors.As(err, &invalidOpt), errors.As(err, &outOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, orders.ErrUnknownRestaurant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Order store temporarily unavailable"})
	default:
		h.logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireOrders aborts with 503 when the order service is not wired.
func (h *Handler) requireOrders(c *gin.Context) bool {
	if h.orders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Order service not configured"})
		return false
	}
	return true
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}
