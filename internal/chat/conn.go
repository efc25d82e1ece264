package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Options bounds a websocket session.
type Options struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

// DefaultOptions returns the default session options.
func DefaultOptions() Options {
	return Options{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		MaxMessageSize: 4096,
		SendBuffer:     32,
	}
}

func (o Options) pingPeriod() time.Duration {
	return o.PongWait * 9 / 10
}

// inbound is what a client sends.
type inbound struct {
	Text string `json:"text"`
}

// Serve joins conn to the room for orderID and pumps messages until either side
// closes or ctx is cancelled. It always closes conn.
func (r *Registry) Serve(ctx context.Context, conn *websocket.Conn, orderID, sender string, opts Options) error {
	defer conn.Close()

	client := NewClient(sender, opts.SendBuffer)
	if err := r.Join(orderID, client); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(opts.WriteWait))
		return err
	}
	r.Broadcast(orderID, Message{Type: TypeJoin, OrderID: orderID, Sender: sender, SentAt: time.Now().UTC()})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			r.Leave(orderID, client)
			r.Broadcast(orderID, Message{Type: TypeLeave, OrderID: orderID, Sender: sender, SentAt: time.Now().UTC()})
		}()
		return r.readPump(conn, orderID, sender, opts)
	})

	g.Go(func() error {
		return writePump(gctx, conn, client, opts)
	})

	// The read side only returns once the connection fails, so a finished write
	// side must unblock it.
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.SetReadDeadline(time.Now())
		return nil
	})

	err := g.Wait()
	if isNormalClose(err) {
		return nil
	}
	return err
}

func (r *Registry) readPump(conn *websocket.Conn, orderID, sender string, opts Options) error {
	conn.SetReadLimit(opts.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	})

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			return err
		}
		text := strings.TrimSpace(in.Text)
		if text == "" {
			continue
		}
		r.Broadcast(orderID, Message{
			Type:    TypeMessage,
			OrderID: orderID,
			Sender:  sender,
			Text:    text,
			SentAt:  time.Now().UTC(),
		})
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, client *Client, opts Options) error {
	ticker := time.NewTicker(opts.pingPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(opts.WriteWait))
			return errSessionDone

		case msg, ok := <-client.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(opts.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return errSessionDone
			}
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(opts.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// errSessionDone ends the errgroup when the room or server closes the session.
var errSessionDone = errors.New("chat session done")

func isNormalClose(err error) bool {
	if err == nil || errors.Is(err, errSessionDone) || errors.Is(err, context.Canceled) {
		return true
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
