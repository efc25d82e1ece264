package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, reg *Registry) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	opts := DefaultOptions()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = reg.Serve(context.Background(), conn, r.URL.Query().Get("order"), r.URL.Query().Get("sender"), opts)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, order, sender string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?order=" + order + "&sender=" + sender
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads frames until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want {
			return msg
		}
	}
}

func TestServeRelaysWithinRoom(t *testing.T) {
	reg := NewRegistry(nil)
	srv := newChatServer(t, reg)

	customer := dial(t, srv, "ord-1", "customer")
	require.Eventually(t, func() bool { return reg.RoomSize("ord-1") == 1 }, 2*time.Second, 10*time.Millisecond)

	courier := dial(t, srv, "ord-1", "courier")
	require.Eventually(t, func() bool { return reg.RoomSize("ord-1") == 2 }, 2*time.Second, 10*time.Millisecond)

	joined := readUntil(t, customer, TypeJoin)
	assert.Equal(t, "customer", joined.Sender)

	require.NoError(t, courier.WriteJSON(map[string]string{"text": "  picking up now "}))

	got := readUntil(t, customer, TypeMessage)
	assert.Equal(t, "ord-1", got.OrderID)
	assert.Equal(t, "courier", got.Sender)
	assert.Equal(t, "picking up now", got.Text)

	echo := readUntil(t, courier, TypeMessage)
	assert.Equal(t, "picking up now", echo.Text)
}

func TestServeLeavesRoomOnDisconnect(t *testing.T) {
	reg := NewRegistry(nil)
	srv := newChatServer(t, reg)

	stay := dial(t, srv, "ord-2", "customer")
	gone := dial(t, srv, "ord-2", "courier")
	require.Eventually(t, func() bool { return reg.RoomSize("ord-2") == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, gone.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	gone.Close()

	require.Eventually(t, func() bool { return reg.RoomSize("ord-2") == 1 }, 2*time.Second, 10*time.Millisecond)
	left := readUntil(t, stay, TypeLeave)
	assert.Equal(t, "courier", left.Sender)
}

func TestServeClosesOnRegistryClose(t *testing.T) {
	reg := NewRegistry(nil)
	srv := newChatServer(t, reg)

	conn := dial(t, srv, "ord-3", "customer")
	require.Eventually(t, func() bool { return reg.RoomSize("ord-3") == 1 }, 2*time.Second, 10*time.Millisecond)

	reg.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
