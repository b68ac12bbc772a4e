package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func TestToGame(t *testing.T) {
	h := New()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		h.Register(ws, monopoly.GameID(r.URL.Query().Get("game")))
	}))
	defer srv.Close()

	dial := func(gID string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?game=" + gID
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		return conn
	}

	alice := dial("game_0")
	defer alice.Close()
	bob := dial("game_0")
	defer bob.Close()
	other := dial("game_1")
	defer other.Close()

	waitForWatchers(t, h, "game_0", 2)
	waitForWatchers(t, h, "game_1", 1)

	type msg struct {
		Action string `json:"action"`
		Turn   int    `json:"turn"`
	}
	if err := h.ToGame("game_0", &msg{Action: "TURN_END", Turn: 4}); err != nil {
		t.Fatalf("ToGame: %v", err)
	}

	for _, conn := range []*websocket.Conn{alice, bob} {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, dat, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		var got msg
		if err := json.Unmarshal(dat, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if diff := cmp.Diff(msg{Action: "TURN_END", Turn: 4}, got); diff != "" {
			t.Errorf("unexpected message (-want +got)\n%s", diff)
		}
	}

	// Nothing was sent to the other game.
	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, dat, err := other.ReadMessage(); err == nil {
		t.Errorf("game_1 watcher got %q, want nothing", dat)
	}
}

func TestUnregisterOnClose(t *testing.T) {
	h := New()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		h.Register(ws, "game_0")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	waitForWatchers(t, h, "game_0", 1)

	conn.Close()
	waitForWatchers(t, h, "game_0", 0)
}

func TestLateWatcherGetsLatest(t *testing.T) {
	h := New()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		h.Register(ws, "game_0")
	}))
	defer srv.Close()

	// Nobody is watching yet, but the hub remembers the last message.
	for turn := 1; turn <= 2; turn++ {
		if err := h.ToGame("game_0", map[string]int{"turn": turn}); err != nil {
			t.Fatalf("ToGame: %v", err)
		}
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, dat, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(dat, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"turn": 2}, got); diff != "" {
		t.Errorf("unexpected replayed message (-want +got)\n%s", diff)
	}
}

func waitForWatchers(t *testing.T, h *Hub, gID monopoly.GameID, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		got := h.Watchers(gID)
		if got == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%q has %d watchers, want %d", gID, got, want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
