package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/TomBebb/Monopoly/web"
)

type Client struct {
	scheme string
	addr   string
	http   *http.Client
}

func New(scheme, addr string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %v", err)
	}

	return &Client{
		scheme: scheme,
		addr:   addr,
		http:   &http.Client{Jar: jar},
	}, nil
}

// GameOptions configures a new game. All players are automated.
type GameOptions struct {
	// Players names the players. If empty, NumPlayers players get default
	// names, and if that's zero too the server picks.
	Players    []string `json:"players,omitempty"`
	NumPlayers int      `json:"num_players,omitempty"`
	// MaxTurns of zero means the game never ends.
	MaxTurns int `json:"max_turns,omitempty"`
}

// CreateGame starts a new game on the server. The client becomes its creator,
// and is the only one who can play its turns.
func (c *Client) CreateGame(opts *GameOptions) (monopoly.GameID, error) {
	req, err := http.NewRequest(http.MethodPost, c.url("/api/game"), toBody(opts))
	if err != nil {
		return "", fmt.Errorf("failed to form request: %w", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return monopoly.GameID(resp.ID), nil
}

func (c *Client) Games() ([]monopoly.GameID, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("/api/games"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp []monopoly.GameID
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return resp, nil
}

func (c *Client) Game(gID monopoly.GameID) (*monopoly.Game, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("/api/game/"+string(gID)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp monopoly.Game
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return &resp, nil
}

// PlayTurn has the server play the game's next turn.
func (c *Client) PlayTurn(gID monopoly.GameID) (*web.TurnEnd, error) {
	req, err := http.NewRequest(http.MethodPost, c.url("/api/game/"+string(gID)+"/turn"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp web.TurnEnd
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to play turn: %w", err)
	}
	return &resp, nil
}

func (c *Client) url(path string) string {
	return c.scheme + "://" + c.addr + path
}

func (c *Client) do(req *http.Request, resp interface{}) error {
	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return handleError(httpResp)
	}

	if resp != nil {
		if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

// HTTPError is returned when the server responds with anything but a 200.
type HTTPError struct {
	StatusCode int
	body       string
	err        error
}

func (h *HTTPError) Error() string {
	if h.err != nil {
		return fmt.Sprintf("[%d] failed to handle error: %v", h.StatusCode, h.err)
	}
	return fmt.Sprintf("[%d] error from server: %s", h.StatusCode, h.body)
}

func handleError(resp *http.Response) error {
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			err:        fmt.Errorf("failed to read error response body: %w", err),
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		body:       string(bytes.TrimSpace(dat)),
	}
}

func toBody(req interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return &errReader{err: err}
	}
	return &buf
}

type errReader struct {
	err error
}

func (e *errReader) Read(_ []byte) (int, error) {
	return 0, e.err
}
