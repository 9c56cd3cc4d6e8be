package transport

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
	"go.uber.org/zap/zaptest"
)

type wsFrame struct {
	msgType int
	data    string
}

// serveFrames starts a server that writes frames to the first client and
// then closes the connection normally.
func serveFrames(t *testing.T, frames ...wsFrame) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(f.msgType, []byte(f.data)); err != nil {
				return
			}
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(time.Second))
		// Wait for the client's close reply.
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketSourceLines(t *testing.T) {
	url := serveFrames(t,
		wsFrame{websocket.TextMessage, `{"type":"KeyClick","payload":{"key":"a"}}`},
		wsFrame{websocket.TextMessage, "one\r\ntwo\n"},
		wsFrame{websocket.BinaryMessage, "ignored"},
		wsFrame{websocket.TextMessage, "bad\xff"},
		wsFrame{websocket.TextMessage, "last"},
	)

	src, err := DialWebSocket(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer src.Close()

	lines, errs := readAll(t, src)
	assert.Equal(t, []string{`{"type":"KeyClick","payload":{"key":"a"}}`, "one", "two", "last"}, lines)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrBinaryMessage)
	assert.ErrorIs(t, errs[1], ErrInvalidUTF8)
}

func TestWebSocketSourceDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := DialWebSocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	assert.Error(t, err)
}

func TestWebSocketSourceCloseUnblocksRead(t *testing.T) {
	upgrader := websocket.Upgrader{}
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	src, err := DialWebSocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := src.ReadLine()
		done <- err
	}()

	require.NoError(t, src.Close())
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ReadLine did not return after Close")
	}
	assert.NoError(t, src.Close(), "second Close is a no-op")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{""}, splitLines(""))
	assert.Equal(t, []string{"a"}, splitLines("a\r\n"))
	assert.Equal(t, []string{"a", "b\r"}, splitLines("a\r\nb\r"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
}
