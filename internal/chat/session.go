package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Message roles used on the wire.
const (
	// RoleUser marks a message sent by the local user.
	RoleUser = "user"

	// RoleAdvisor marks a message from the advisor on the other end.
	RoleAdvisor = "advisor"

	// RoleSystem marks a server-generated notice (advisor joined, queue
	// position, session ending).
	RoleSystem = "system"
)

// ErrSessionClosed is returned when sending or receiving on a session
// after the peer closed the connection normally.
var ErrSessionClosed = errors.New("chat session closed")

// Message is one chat frame.
type Message struct {
	// Role identifies the sender: user, advisor, or system.
	Role string `json:"role"`

	// Text is the message body.
	Text string `json:"text"`

	// SentAt is set by the server on delivered messages.
	SentAt time.Time `json:"sent_at,omitempty"`
}

// Session is an open advisor chat connection.
//
// A Session is not safe for concurrent Send calls; the CLI drives it from
// a single goroutine reading stdin while a second goroutine calls Recv.
// That split matches the websocket package's one-reader one-writer rule.
type Session struct {
	conn *websocket.Conn
}

// Options configures dialing a chat session.
type Options struct {
	// Token is the bearer token for the authenticated user.
	Token string

	// HandshakeTimeout bounds the websocket handshake.
	// Zero means the dialer default.
	HandshakeTimeout time.Duration
}

// Dial opens a chat session against the given websocket URL
// (ws:// or wss://).
func Dial(ctx context.Context, wsURL string, opts Options) (*Session, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: opts.HandshakeTimeout,
	}

	header := http.Header{}
	if opts.Token != "" {
		header.Set("Authorization", "Bearer "+opts.Token)
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("chat handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to chat: %w", err)
	}

	return &Session{conn: conn}, nil
}

// Send writes a user message to the session.
func (s *Session) Send(text string) error {
	msg := Message{Role: RoleUser, Text: text}
	if err := s.conn.WriteJSON(&msg); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return ErrSessionClosed
		}
		return fmt.Errorf("failed to send chat message: %w", err)
	}
	return nil
}

// Recv blocks until the next message arrives.
// It returns ErrSessionClosed when the peer closes the connection normally.
func (s *Session) Recv() (*Message, error) {
	var msg Message
	if err := s.conn.ReadJSON(&msg); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, ErrSessionClosed
		}
		return nil, fmt.Errorf("failed to receive chat message: %w", err)
	}
	return &msg, nil
}

// Close sends a normal closure frame and closes the connection.
func (s *Session) Close() error {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	// Best effort; the peer may already be gone.
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	return s.conn.Close()
}
