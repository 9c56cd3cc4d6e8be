package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrBinaryMessage is returned for a binary WebSocket message; only text
// messages carry commands.
var ErrBinaryMessage = errors.New("binary websocket message")

const (
	dialTimeout  = 10 * time.Second
	maxReadLimit = 1 << 20
)

// WebSocketSource reads command lines from a single upstream WebSocket.
// Each text message holds one or more newline-separated lines. The stream
// ends when the peer closes the connection or the connection fails; there
// is no reconnect.
type WebSocketSource struct {
	url    string
	logger *zap.Logger

	conn    *websocket.Conn
	pending []string
	err     error

	mu     sync.Mutex
	closed bool
}

// DialWebSocket connects to url and returns a source reading from it.
func DialWebSocket(ctx context.Context, url string, logger *zap.Logger) (*WebSocketSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = dialTimeout

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	conn.SetReadLimit(maxReadLimit)

	logger.Info("Connected to command source", zap.String("url", url))
	return &WebSocketSource{url: url, logger: logger, conn: conn}, nil
}

func (s *WebSocketSource) ReadLine() (string, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return "", s.err
		}
		if err := s.readMessage(); err != nil {
			return "", err
		}
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return line, nil
}

// readMessage fills pending from the next text message. Connection errors
// are terminal and remembered, since gorilla/websocket does not allow
// reading again after a failed read.
func (s *WebSocketSource) readMessage() error {
	msgType, data, err := s.conn.ReadMessage()
	if err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !s.isClosed() {
			s.logger.Warn("Command source read error", zap.String("url", s.url), zap.Error(err))
		}
		s.err = io.EOF
		return s.err
	}
	if msgType != websocket.TextMessage {
		return ErrBinaryMessage
	}
	s.pending = splitLines(string(data))
	return nil
}

func (s *WebSocketSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close shuts down the connection. It is safe to call while ReadLine is
// blocked; the blocked call then reports io.EOF.
func (s *WebSocketSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}

// splitLines splits a message the way ReaderSource splits a stream: a
// trailing terminator does not produce an extra empty line.
func splitLines(msg string) []string {
	lines := strings.Split(msg, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if i < len(lines)-1 || strings.HasSuffix(msg, "\n") {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return lines
}
