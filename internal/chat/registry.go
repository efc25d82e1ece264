// Package chat relays messages between the customer and courier of an order.
//
// Rooms are keyed by order ID and live in a Registry owned by the server and
// passed to the handlers that need it.
package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrRegistryClosed is returned by Join after Close.
var ErrRegistryClosed = errors.New("chat registry closed")

// MessageType distinguishes user text from room notices.
type MessageType string

const (
	TypeMessage MessageType = "message"
	TypeJoin    MessageType = "join"
	TypeLeave   MessageType = "leave"
)

// Message is one chat frame as sent to clients.
type Message struct {
	Type    MessageType `json:"type"`
	OrderID string      `json:"orderId"`
	Sender  string      `json:"sender"`
	Text    string      `json:"text,omitempty"`
	SentAt  time.Time   `json:"sentAt"`
}

// Client is one participant's outbound queue.
type Client struct {
	Sender string

	send      chan Message
	closeOnce sync.Once
}

// NewClient creates a client whose queue holds up to buffer messages.
func NewClient(sender string, buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{Sender: sender, send: make(chan Message, buffer)}
}

// Messages returns the outbound queue. It is closed when the client leaves its room.
func (c *Client) Messages() <-chan Message {
	return c.send
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Registry maps order IDs to the clients connected to that order's room.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]map[*Client]struct{}
	closed  bool
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(metrics *MetricsRecorder) *Registry {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Registry{
		rooms:   make(map[string]map[*Client]struct{}),
		metrics: metrics,
		logger:  log.With().Str("component", "chat_registry").Logger(),
	}
}

// Join adds c to the room for orderID, creating the room if needed.
func (r *Registry) Join(orderID string, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	room, ok := r.rooms[orderID]
	if !ok {
		room = make(map[*Client]struct{})
		r.rooms[orderID] = room
	}
	room[c] = struct{}{}
	r.metrics.RecordJoin()

	r.logger.Debug().
		Str("order_id", orderID).
		Str("sender", c.Sender).
		Int("room_size", len(room)).
		Msg("Client joined chat room")
	return nil
}

// Leave removes c from the room and closes its queue. Empty rooms are dropped.
func (r *Registry) Leave(orderID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(orderID, c)
}

// removeLocked must be called with mu held.
func (r *Registry) removeLocked(orderID string, c *Client) {
	room, ok := r.rooms[orderID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	c.close()
	r.metrics.RecordLeave()
	if len(room) == 0 {
		delete(r.rooms, orderID)
	}
}

// Broadcast queues msg for every client in the room and returns how many
// received it. Clients whose queue is full are removed from the room.
func (r *Registry) Broadcast(orderID string, msg Message) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[orderID]
	delivered := 0
	var slow []*Client
	for c := range room {
		select {
		case c.send <- msg:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		r.logger.Warn().
			Str("order_id", orderID).
			Str("sender", c.Sender).
			Msg("Dropping slow chat client")
		r.removeLocked(orderID, c)
	}
	r.metrics.RecordBroadcast(delivered, len(slow))
	return delivered
}

// RoomSize returns the number of clients in the room for orderID.
func (r *Registry) RoomSize(orderID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[orderID])
}

// Rooms returns the number of open rooms.
func (r *Registry) Rooms() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// Close disconnects every client and rejects further joins.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for orderID, room := range r.rooms {
		for c := range room {
			r.removeLocked(orderID, c)
		}
	}
	r.logger.Info().Msg("Chat registry closed")
}
