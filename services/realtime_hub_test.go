package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pings and broadcasts target the same connection from different goroutines;
// both must funnel through the client's write lock.
func TestRealtimeHub_ConcurrentPingsAndBroadcasts(t *testing.T) {
	hub := NewRealtimeHub()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	registered := make(chan *WSClient, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: 1, Conn: conn}
		hub.Register(cl)
		registered <- cl
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(cl)
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	cl := <-registered

	const messages = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < messages; i++ {
			hub.Broadcast(1, map[string]any{"kind": "goal.reached", "n": i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < messages; i++ {
			if err := cl.Ping(); err != nil {
				return
			}
		}
	}()

	// Control frames are consumed inside ReadMessage; only the broadcasts
	// surface here.
	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	received := 0
	for received < messages {
		mt, _, err := client.ReadMessage()
		require.NoError(t, err)
		if mt == websocket.TextMessage {
			received++
		}
	}
	wg.Wait()
	assert.Equal(t, messages, received)
}

func TestRealtimeHub_UnregisterDropsTheClient(t *testing.T) {
	hub := NewRealtimeHub()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	registered := make(chan *WSClient, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: 7, Conn: conn}
		hub.Register(cl)
		registered <- cl
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	cl := <-registered
	hub.Unregister(cl)

	// Broadcasting to an unregistered user writes nowhere and must not panic.
	hub.Broadcast(7, map[string]any{"kind": "goal.reached"})
	assert.Error(t, cl.Ping(), "connection closed on unregister")
}
