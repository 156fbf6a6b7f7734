package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(msg)
}

func TestHub_CommandsAndBroadcast(t *testing.T) {
	hub := NewHub(func(cmd string) string { return "echo " + cmd }, 100, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("  /status \n")); err != nil {
		t.Fatal(err)
	}
	if got := readText(t, conn); got != "echo /status" {
		t.Fatalf("reply = %q", got)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Broadcast("tick")
	if got := readText(t, conn); got != "tick" {
		t.Fatalf("broadcast = %q", got)
	}
}

func TestHub_GreetsNewClients(t *testing.T) {
	hub := NewHub(func(cmd string) string { return "ok" }, 100, 10)
	hub.SetGreeting("Welcome back!")
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	for i := 0; i < 2; i++ {
		conn := dial(t, srv)
		if got := readText(t, conn); got != "Welcome back!" {
			t.Fatalf("client %d greeting = %q", i, got)
		}
		conn.Close()
	}
}

func TestHub_RateLimit(t *testing.T) {
	var calls atomic.Int32
	hub := NewHub(func(cmd string) string { calls.Add(1); return "ok" }, 0, 1)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("/status")); err != nil {
			t.Fatal(err)
		}
	}
	if got := readText(t, conn); got != "ok" {
		t.Fatalf("first reply = %q", got)
	}
	if got := readText(t, conn); got != rateLimitedReply {
		t.Fatalf("second reply = %q", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times", n)
	}
}
