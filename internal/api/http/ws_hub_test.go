package apihttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"bonarr/internal/domain"
)

// ---- helpers ----

// startTestHub creates a hub and runs it in a background goroutine. Tests
// that register fake (nil-conn) clients must unregister them before the hub
// stops, since hub.Close() writes a close frame to each client's conn.
func startTestHub(t *testing.T) *wsHub {
	t.Helper()
	hub := newWSHub(testLogger())
	go hub.run()
	return hub
}

func unregisterAll(hub *wsHub, clients ...*wsClient) {
	for _, c := range clients {
		hub.unregister <- c
	}
	time.Sleep(20 * time.Millisecond)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	resp.Body.Close()
	return conn
}

func readWSMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) wsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ws message: %v", err)
	}
	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal ws message: %v (raw: %s)", err, data)
	}
	return msg
}

// ---- wsHub unit tests ----

func TestWSHub_RegisterAndUnregister(t *testing.T) {
	hub := startTestHub(t)

	client := &wsClient{hub: hub, send: make(chan []byte, 256)}
	hub.register <- client
	time.Sleep(20 * time.Millisecond)

	if hub.clientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.clientCount())
	}

	hub.unregister <- client
	time.Sleep(20 * time.Millisecond)

	if hub.clientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.clientCount())
	}
}

func TestWSHub_UnregisterUnknownClient(t *testing.T) {
	hub := startTestHub(t)

	unknown := &wsClient{hub: hub, send: make(chan []byte, 256)}
	hub.unregister <- unknown
	time.Sleep(20 * time.Millisecond)

	if hub.clientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.clientCount())
	}
}

func TestWSHub_BroadcastToAllClients(t *testing.T) {
	hub := startTestHub(t)

	c1 := &wsClient{hub: hub, send: make(chan []byte, 256)}
	c2 := &wsClient{hub: hub, send: make(chan []byte, 256)}
	hub.register <- c1
	hub.register <- c2
	time.Sleep(20 * time.Millisecond)

	hub.Broadcast("torrents", []domain.TorrentRecord{{Hash: "AAA"}})
	time.Sleep(20 * time.Millisecond)

	for i, c := range []*wsClient{c1, c2} {
		select {
		case data := <-c.send:
			var msg wsMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("client %d: unmarshal: %v", i, err)
			}
			if msg.Type != "torrents" {
				t.Fatalf("client %d: type = %q, want torrents", i, msg.Type)
			}
		default:
			t.Fatalf("client %d: no message received", i)
		}
	}
	unregisterAll(hub, c1, c2)
}

func TestWSHub_BroadcastDropsSlowClient(t *testing.T) {
	hub := startTestHub(t)

	slow := &wsClient{hub: hub, send: make(chan []byte, 1)}
	hub.register <- slow
	time.Sleep(20 * time.Millisecond)

	slow.send <- []byte("fill")

	msg, _ := json.Marshal(wsMessage{Type: "test", Data: "x"})
	hub.broadcast <- msg
	time.Sleep(20 * time.Millisecond)

	if hub.clientCount() != 0 {
		t.Fatalf("expected slow client to be dropped, got %d clients", hub.clientCount())
	}
}

func TestWSHub_Broadcast_NoClients(t *testing.T) {
	hub := startTestHub(t)

	// Should not panic or block.
	hub.Broadcast("torrents", []domain.TorrentRecord{{Hash: "AAA"}})
}

func TestWSHub_Broadcast_MarshalFailure(t *testing.T) {
	hub := startTestHub(t)

	client := &wsClient{hub: hub, send: make(chan []byte, 256)}
	hub.register <- client
	time.Sleep(20 * time.Millisecond)

	// channels cannot be marshaled to JSON
	hub.Broadcast("bad", make(chan int))
	time.Sleep(20 * time.Millisecond)

	select {
	case <-client.send:
		t.Fatal("should not receive message when marshal fails")
	default:
	}
	unregisterAll(hub, client)
}

// ---- WebSocket handler integration tests ----

func TestHandleWS_UpgradeSucceeds(t *testing.T) {
	srv := httptest.NewServer(newTestServer(newFakeStore()))
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestHandleWS_NonWSRequest(t *testing.T) {
	s := newTestServer(newFakeStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleWS_BroadcastTorrents(t *testing.T) {
	store := newFakeStore()
	store.records["AAA"] = domain.TorrentRecord{Hash: "AAA", Name: "one", AddedOn: 2}
	store.records["BBB"] = domain.TorrentRecord{Hash: "BBB", Name: "two", AddedOn: 1}
	s := newTestServer(store)
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	s.BroadcastTorrents()

	msg := readWSMessage(t, conn, 2*time.Second)
	if msg.Type != "torrents" {
		t.Fatalf("type = %q, want torrents", msg.Type)
	}
	arr, ok := msg.Data.([]interface{})
	if !ok {
		t.Fatalf("data is not array: %T", msg.Data)
	}
	if len(arr) != 2 {
		t.Fatalf("expected 2 torrents, got %d", len(arr))
	}
}

func TestServer_BroadcastTorrents_RepoError(t *testing.T) {
	store := newFakeStore()
	store.err = domain.ErrStorage
	s := newTestServer(store)
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	// No message sent on error.
	s.BroadcastTorrents()
	time.Sleep(50 * time.Millisecond)

	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected read timeout, got message")
	}
}

func TestServer_BroadcastTorrents_NilHub(t *testing.T) {
	s := &Server{}
	// Should not panic.
	s.BroadcastTorrents()
}

func TestServer_Close_DisconnectsClients(t *testing.T) {
	s := newTestServer(newFakeStore())
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dialWS(t, srv)
	time.Sleep(50 * time.Millisecond)

	s.Close()
	time.Sleep(100 * time.Millisecond)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected error after server close")
	}
	conn.Close()
}
