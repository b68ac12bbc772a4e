package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/TomBebb/Monopoly/web"
	"github.com/gorilla/websocket"
)

type wsClient struct {
	conn  *websocket.Conn
	msgs  chan []byte
	done  chan struct{}
	hooks WSHooks
}

// ListenForUpdates follows a game's events until the connection drops or the
// game ends. It returns nil after a GAME_END message.
func (c *Client) ListenForUpdates(gID monopoly.GameID, hooks WSHooks) error {
	scheme := "ws"
	if c.scheme == "https" {
		scheme = "wss"
	}

	addr := scheme + "://" + c.addr + "/api/game/" + string(gID) + "/ws"

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		Jar:              c.http.Jar,
	}
	conn, _, err := dialer.Dial(addr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer conn.Close()

	if hooks.OnConnect != nil {
		go hooks.OnConnect()
	}

	wsc := &wsClient{
		conn: conn,
		done: make(chan struct{}),
		// Buffered so slow hooks don't hold up reading. Messages are still
		// handled one at a time, in order.
		msgs:  make(chan []byte, 100),
		hooks: hooks,
	}

	handled := make(chan error, 1)
	go func() { handled <- wsc.handleMessages() }()

	readErr := wsc.read()
	// A GAME_END closes the connection, so the read error that follows it
	// isn't a failure.
	switch err := <-handled; err {
	case errGameOver:
		return nil
	case nil:
		return readErr
	default:
		return err
	}
}

var errGameOver = errors.New("game over")

func (ws *wsClient) read() error {
	defer close(ws.done)
	for {
		messageType, message, err := ws.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("ReadMessage: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		ws.msgs <- message
	}
}

func (ws *wsClient) handleMessages() error {
	for {
		select {
		case <-ws.done:
			// Drain anything read before the connection closed.
			for {
				select {
				case msg := <-ws.msgs:
					if err := ws.handle(msg); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		case msg := <-ws.msgs:
			if err := ws.handle(msg); err == errGameOver {
				ws.conn.Close()
				return err
			}
		}
	}
}

func (ws *wsClient) handle(msg []byte) error {
	var justAction struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(msg, &justAction); err != nil {
		log.Printf("failed to unmarshal action from server: %v", err)
		return nil
	}

	switch justAction.Action {
	case web.ActionTurnEnd:
		ws.handleTurnEnd(msg)
	case web.ActionGameEnd:
		ws.handleGameEnd(msg)
		return errGameOver
	default:
		log.Printf("unknown message action %q", justAction.Action)
	}
	return nil
}

func (ws *wsClient) handleTurnEnd(dat []byte) {
	var te web.TurnEnd
	if err := json.Unmarshal(dat, &te); err != nil {
		log.Printf("handleTurnEnd: %v", err)
		return
	}

	if ws.hooks.OnTurnEnd == nil {
		return
	}
	ws.hooks.OnTurnEnd(&te)
}

func (ws *wsClient) handleGameEnd(dat []byte) {
	var ge web.GameEnd
	if err := json.Unmarshal(dat, &ge); err != nil {
		log.Printf("handleGameEnd: %v", err)
		return
	}

	if ws.hooks.OnEnd == nil {
		return
	}
	ws.hooks.OnEnd(&ge)
}

type WSHooks struct {
	OnConnect func()
	OnTurnEnd func(*web.TurnEnd)
	OnEnd     func(*web.GameEnd)
}
