// Package hub fans game events out to websocket spectators.
package hub

import (
	"encoding/json"
	"fmt"

	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/gorilla/websocket"
)

// Hub tracks who is watching each game. A single goroutine owns all of its
// state, and everything else talks to it over channels.
type Hub struct {
	watchers map[monopoly.GameID]map[*connection]bool
	// latest is the last message sent to each game, replayed to anyone who
	// starts watching late so they aren't left without a board until the next
	// turn.
	latest map[monopoly.GameID][]byte

	broadcast  chan *broadcastMsg
	register   chan *connection
	unregister chan *connection
	count      chan *countReq
}

// New creates a new Hub and starts it in a background Go routine.
func New() *Hub {
	h := &Hub{
		watchers:   make(map[monopoly.GameID]map[*connection]bool),
		latest:     make(map[monopoly.GameID][]byte),
		broadcast:  make(chan *broadcastMsg),
		register:   make(chan *connection),
		unregister: make(chan *connection),
		count:      make(chan *countReq),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			if h.watchers[c.gameID] == nil {
				h.watchers[c.gameID] = make(map[*connection]bool)
			}
			h.watchers[c.gameID][c] = true
			if msg, ok := h.latest[c.gameID]; ok {
				c.send <- msg
			}
		case c := <-h.unregister:
			h.drop(c)
		case m := <-h.broadcast:
			h.latest[m.gameID] = m.msg
			for c := range h.watchers[m.gameID] {
				select {
				case c.send <- m.msg:
				default:
					// Too far behind to catch up.
					h.drop(c)
				}
			}
		case req := <-h.count:
			req.resp <- len(h.watchers[req.gameID])
		}
	}
}

// drop closes the connection's queue. It's safe to call more than once.
func (h *Hub) drop(c *connection) {
	conns := h.watchers[c.gameID]
	if !conns[c] {
		return
	}
	delete(conns, c)
	close(c.send)
	if len(conns) == 0 {
		delete(h.watchers, c.gameID)
	}
}

type broadcastMsg struct {
	gameID monopoly.GameID
	msg    []byte
}

// ToGame sends a message, encoded as JSON, to everyone watching a game.
func (h *Hub) ToGame(gID monopoly.GameID, msg interface{}) error {
	dat, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	h.broadcast <- &broadcastMsg{gameID: gID, msg: dat}
	return nil
}

type countReq struct {
	gameID monopoly.GameID
	resp   chan int
}

// Watchers returns how many connections are registered for a game.
func (h *Hub) Watchers(gID monopoly.GameID) int {
	req := &countReq{gameID: gID, resp: make(chan int, 1)}
	h.count <- req
	return <-req.resp
}

// Register starts sending a game's messages to ws, beginning with the last
// one sent, if any. The hub owns ws from here on.
func (h *Hub) Register(ws *websocket.Conn, gID monopoly.GameID) {
	conn := &connection{
		h:      h,
		gameID: gID,
		send:   make(chan []byte, 256),
		ws:     ws,
	}
	h.register <- conn
	go conn.writePump()
	go conn.readPump()
}
