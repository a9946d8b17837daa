package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// A write failure must close the connection so the read pump errors
// out instead of blocking forever once the send buffer fills.
func TestWritePump_ClosesConnectionOnWriteFailure(t *testing.T) {
	upgrader := websocket.Upgrader{}
	serverConn := make(chan *websocket.Conn, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConn <- conn
	}))
	defer ts.Close()

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer peer.Close()

	conn := <-serverConn
	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 4),
		server: &Server{logger: zap.NewNop()},
	}

	// An already-expired write deadline makes the next write fail.
	if err := conn.SetWriteDeadline(time.Unix(1, 0)); err != nil {
		t.Fatalf("SetWriteDeadline: %v", err)
	}
	client.send <- WSMessage{Event: EventResponse, Data: map[string]any{"ok": true}}

	done := make(chan struct{})
	go func() {
		client.writePump()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("write pump did not stop after the write failure")
	}

	if err := conn.UnderlyingConn().SetReadDeadline(time.Now()); err == nil {
		t.Error("connection must be closed when the write pump dies")
	}
}

// With the writer gone and the connection closed, the read pump's
// blocking read returns and the pump shuts the session down.
func TestReadPump_StopsAfterConnectionClosed(t *testing.T) {
	upgrader := websocket.Upgrader{}
	serverConn := make(chan *websocket.Conn, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConn <- conn
	}))
	defer ts.Close()

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer peer.Close()

	conn := <-serverConn
	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 4),
		server: &Server{logger: zap.NewNop()},
	}

	done := make(chan struct{})
	go func() {
		client.readPump()
		close(done)
	}()

	conn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("read pump did not stop after the connection closed")
	}

	// readPump closed the send channel on the way out.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel should be closed, not carrying data")
		}
	default:
		t.Error("send channel should be closed")
	}
}
