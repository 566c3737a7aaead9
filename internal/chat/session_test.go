package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newEchoServer starts a websocket server that echoes user messages back
// with the advisor role. It records the Authorization header it saw.
func newEchoServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()

	var upgrader websocket.Upgrader
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			reply := Message{
				Role:   RoleAdvisor,
				Text:   "echo: " + msg.Text,
				SentAt: time.Now(),
			}
			if err := conn.WriteJSON(&reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	return server, &authHeader
}

// wsURL converts an httptest server URL to a ws:// URL.
func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

// TestSession tests the chat session round trip.
func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("send and receive a message", func(t *testing.T) {
		t.Parallel()

		server, _ := newEchoServer(t)

		session, err := Dial(context.Background(), wsURL(server), Options{Token: "tok-123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer session.Close()

		if err := session.Send("hello advisor"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		msg, err := session.Recv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msg.Role != RoleAdvisor {
			t.Errorf("expected advisor role, got %q", msg.Role)
		}
		if msg.Text != "echo: hello advisor" {
			t.Errorf("unexpected reply text: %q", msg.Text)
		}
	})

	t.Run("sends bearer token during handshake", func(t *testing.T) {
		t.Parallel()

		server, authHeader := newEchoServer(t)

		session, err := Dial(context.Background(), wsURL(server), Options{Token: "tok-456"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer session.Close()

		if *authHeader != "Bearer tok-456" {
			t.Errorf("expected Authorization header %q, got %q", "Bearer tok-456", *authHeader)
		}
	})

	t.Run("no Authorization header without token", func(t *testing.T) {
		t.Parallel()

		server, authHeader := newEchoServer(t)

		session, err := Dial(context.Background(), wsURL(server), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer session.Close()

		if *authHeader != "" {
			t.Errorf("expected no Authorization header, got %q", *authHeader)
		}
	})

	t.Run("recv reports normal closure as ErrSessionClosed", func(t *testing.T) {
		t.Parallel()

		var upgrader websocket.Upgrader
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()

			closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session over")
			_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
		}))
		t.Cleanup(server.Close)

		session, err := Dial(context.Background(), wsURL(server), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer session.Close()

		if _, err := session.Recv(); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("expected ErrSessionClosed, got %v", err)
		}
	})

	t.Run("dial failure against non-websocket endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not a websocket endpoint", http.StatusBadRequest)
		}))
		t.Cleanup(server.Close)

		if _, err := Dial(context.Background(), wsURL(server), Options{}); err == nil {
			t.Error("expected an error dialing a non-websocket endpoint")
		}
	})

	t.Run("dial honors context cancellation", func(t *testing.T) {
		t.Parallel()

		server, _ := newEchoServer(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := Dial(ctx, wsURL(server), Options{}); err == nil {
			t.Error("expected an error with a canceled context")
		}
	})
}
