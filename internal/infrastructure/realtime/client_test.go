package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/pkg/config"
)

var testRealtimeConfig = config.RealtimeConfig{
	HeartbeatInterval: time.Minute,
	WriteTimeout:      time.Second,
	PongTimeout:       5 * time.Second,
	SendBuffer:        8,
	MaxMessageBytes:   1024,
}

func newTestServer(t *testing.T, r *Registry) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		conn := r.Register(strings.TrimPrefix(req.URL.Path, "/"))
		NewClient(ws, conn, r, testRealtimeConfig, zap.NewNop()).Serve()
	}))
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + id
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return ws
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestClient_JoinAndReceive(t *testing.T) {
	r := NewRegistry(8, zap.NewNop())
	b := NewBroadcaster(r, zap.NewNop())
	srv := newTestServer(t, r)
	defer srv.Close()

	ws := dial(t, srv, "dashboard")
	defer ws.Close()

	if err := ws.WriteJSON(ClientMessage{Action: ActionJoin, Room: "interview_42"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "room join", func() bool { return len(r.Members("interview_42")) == 1 })

	if n := b.BroadcastRoom("interview_42", updateEvent(3)); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f wireFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Type != "interview_update" {
		t.Fatalf("unexpected event type %q", f.Type)
	}

	if err := ws.WriteJSON(ClientMessage{Action: ActionLeave, Room: "interview_42"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "room leave", func() bool { return r.RoomCount() == 0 })
}

func TestClient_ProtocolViolationDeregisters(t *testing.T) {
	r := NewRegistry(8, zap.NewNop())
	srv := newTestServer(t, r)
	defer srv.Close()

	ws := dial(t, srv, "bad")
	defer ws.Close()
	waitFor(t, "registration", func() bool { return r.Count() == 1 })

	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"action":"dance","room":"R"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := ws.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseProtocolError) {
		t.Fatalf("expected protocol error close, got %v", err)
	}
	waitFor(t, "deregistration", func() bool { return r.Count() == 0 })
}

func TestClient_DisconnectDeregisters(t *testing.T) {
	r := NewRegistry(8, zap.NewNop())
	srv := newTestServer(t, r)
	defer srv.Close()

	ws := dial(t, srv, "leaver")
	if err := ws.WriteJSON(ClientMessage{Action: ActionJoin, Room: "analytics"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "room join", func() bool { return len(r.Members("analytics")) == 1 })

	ws.Close()
	waitFor(t, "deregistration", func() bool { return r.Count() == 0 && r.RoomCount() == 0 })
}
