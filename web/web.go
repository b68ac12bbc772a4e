package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/TomBebb/Monopoly/dice"
	"github.com/TomBebb/Monopoly/game"
	"github.com/TomBebb/Monopoly/hub"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
)

const (
	// Bounds on players per game.
	minPlayers     = 2
	maxPlayers     = 8
	defaultPlayers = 4

	authCookie = "Authorization"
)

type Srv struct {
	sc  *securecookie.SecureCookie
	h   *hub.Hub
	mux *mux.Router
	db  monopoly.DB

	upgrader websocket.Upgrader

	mu sync.Mutex
	// r is guarded by mu.
	r *rand.Rand
	// live holds the games this server is running. A game only exists in the
	// database after a restart, and can be viewed but no longer played.
	live map[monopoly.GameID]*liveGame
}

type liveGame struct {
	mu      sync.Mutex
	g       *game.Game
	pr      *presenter
	creator string
}

// New returns an initialized server.
func New(db monopoly.DB, r *rand.Rand, sc *securecookie.SecureCookie) *Srv {
	s := &Srv{
		sc:   sc,
		h:    hub.New(),
		db:   db,
		r:    r,
		live: make(map[monopoly.GameID]*liveGame),
	}
	s.mux = s.initMux()
	return s
}

func (s *Srv) initMux() *mux.Router {
	m := mux.NewRouter()
	// New game.
	m.HandleFunc("/api/game", s.handle(s.serveCreateGame)).Methods("POST")
	// All games.
	m.HandleFunc("/api/games", s.handle(s.serveGames)).Methods("GET")
	// Get game.
	m.HandleFunc("/api/game/{id}", s.handle(s.requireGame(s.serveGame))).Methods("GET")
	// Play the next turn.
	m.HandleFunc("/api/game/{id}/turn", s.handle(s.requireGame(s.serveTurn, isGameCreator(), isGameLive()))).Methods("POST")

	// WebSocket handler for games.
	m.HandleFunc("/api/game/{id}/ws", s.handle(s.requireGame(s.serveData))).Methods("GET")

	return m
}

func (s *Srv) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// httpError is an error with a status code other than 500.
type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

func httpErrorf(code int, format string, args ...interface{}) error {
	return &httpError{code: code, msg: fmt.Sprintf(format, args...)}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (s *Srv) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var herr *httpError
		if errors.As(err, &herr) {
			http.Error(w, herr.msg, herr.code)
			return
		}
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// gameReq is what a game handler knows about the request.
type gameReq struct {
	id       monopoly.GameID
	game     *monopoly.Game
	live     *liveGame
	clientID string
}

type gameHandlerFunc func(http.ResponseWriter, *http.Request, *gameReq) error

type gameCheck func(*gameReq) error

func isGameCreator() gameCheck {
	return func(gr *gameReq) error {
		if gr.clientID == "" {
			return httpErrorf(http.StatusUnauthorized, "Not logged in")
		}
		if gr.live != nil && gr.live.creator != gr.clientID {
			return httpErrorf(http.StatusForbidden, "Only the game's creator can do that")
		}
		return nil
	}
}

func isGameLive() gameCheck {
	return func(gr *gameReq) error {
		if gr.live == nil {
			return httpErrorf(http.StatusConflict, "Game %q isn't running on this server", gr.id)
		}
		if gr.game.Status == monopoly.Finished {
			return httpErrorf(http.StatusConflict, "Game %q is over", gr.id)
		}
		return nil
	}
}

// requireGame loads the game named in the URL and runs the checks before
// handing off to fn.
func (s *Srv) requireGame(fn gameHandlerFunc, checks ...gameCheck) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id := monopoly.GameID(mux.Vars(r)["id"])
		g, err := s.db.Game(id)
		if errors.Is(err, monopoly.ErrGameNotFound) {
			return httpErrorf(http.StatusNotFound, "Game %q not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load game %q: %w", id, err)
		}

		s.mu.Lock()
		lg := s.live[id]
		s.mu.Unlock()

		gr := &gameReq{
			id:       id,
			game:     g,
			live:     lg,
			clientID: s.clientID(r),
		}
		for _, check := range checks {
			if err := check(gr); err != nil {
				return err
			}
		}
		return fn(w, r, gr)
	}
}

type createGameReq struct {
	// Players are the names of the players, all automated. If empty,
	// NumPlayers players get default names.
	Players    []string `json:"players"`
	NumPlayers int      `json:"num_players"`
	MaxTurns   int      `json:"max_turns"`
}

func (s *Srv) serveCreateGame(w http.ResponseWriter, r *http.Request) error {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return httpErrorf(http.StatusBadRequest, "Malformed request: %v", err)
	}

	names := req.Players
	if len(names) == 0 {
		n := req.NumPlayers
		if n == 0 {
			n = defaultPlayers
		}
		for i := 1; i <= n; i++ {
			names = append(names, fmt.Sprintf("Player %d", i))
		}
	}
	if len(names) < minPlayers || len(names) > maxPlayers {
		return httpErrorf(http.StatusBadRequest, "Games need %d to %d players, got %d", minPlayers, maxPlayers, len(names))
	}
	if req.MaxTurns < 0 {
		return httpErrorf(http.StatusBadRequest, "max_turns can't be negative")
	}

	var specs []game.PlayerSpec
	for _, name := range names {
		specs = append(specs, game.PlayerSpec{Name: name, Automated: true})
	}

	clientID := s.clientID(r)
	if clientID == "" {
		clientID = uuid.NewString()
	}
	s.mu.Lock()
	seed := s.r.Int63()
	s.mu.Unlock()

	pr := &presenter{}
	g, err := game.New(&game.Config{
		Players:   specs,
		Presenter: pr,
		Random:    dice.New(rand.New(rand.NewSource(seed))),
		MaxTurns:  req.MaxTurns,
	})
	if err != nil {
		return httpErrorf(http.StatusBadRequest, "Failed to create game: %v", err)
	}

	id, err := s.db.NewGame(&monopoly.Game{
		Status:   monopoly.Pending,
		MaxTurns: req.MaxTurns,
		State:    g.Board().State(),
	})
	if err != nil {
		return fmt.Errorf("failed to store game: %w", err)
	}

	s.mu.Lock()
	s.live[id] = &liveGame{g: g, pr: pr, creator: clientID}
	s.mu.Unlock()
	log.Printf("created game %q for %s", id, strings.Join(names, ", "))

	if err := s.setClientID(w, clientID); err != nil {
		return err
	}

	jsonResp(w, struct {
		ID string `json:"id"`
	}{string(id)})
	return nil
}

func (s *Srv) serveGames(w http.ResponseWriter, r *http.Request) error {
	gIDs, err := s.db.Games()
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	if gIDs == nil {
		gIDs = []monopoly.GameID{}
	}

	jsonResp(w, gIDs)
	return nil
}

func (s *Srv) serveGame(w http.ResponseWriter, r *http.Request, gr *gameReq) error {
	jsonResp(w, gr.game)
	return nil
}

func (s *Srv) serveTurn(w http.ResponseWriter, r *http.Request, gr *gameReq) error {
	lg := gr.live
	lg.mu.Lock()
	defer lg.mu.Unlock()

	state, status, err := lg.g.Turn()
	if errors.Is(err, game.ErrGameOver) {
		return httpErrorf(http.StatusConflict, "Game %q is over", gr.id)
	}
	if err != nil {
		return fmt.Errorf("failed to play turn: %w", err)
	}

	if err := s.db.UpdateState(gr.id, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	if err := s.db.UpdateStatus(gr.id, status); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}

	te := &TurnEnd{
		GameID: gr.id,
		Turn:   state.Turn - 1,
		Status: status,
		Events: lg.pr.take(),
		State:  state,
	}
	if err := s.h.ToGame(gr.id, te); err != nil {
		log.Printf("failed to broadcast turn %d of %q: %v", te.Turn, gr.id, err)
	}
	if status == monopoly.Finished {
		ge := &GameEnd{GameID: gr.id, Standings: lg.g.Outcome().Standings}
		if err := s.h.ToGame(gr.id, ge); err != nil {
			log.Printf("failed to broadcast end of %q: %v", gr.id, err)
		}
	}

	jsonResp(w, te)
	return nil
}

func (s *Srv) serveData(w http.ResponseWriter, r *http.Request, gr *gameReq) error {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("failed to upgrade websocket for %q: %v", gr.id, err)
		return nil
	}
	s.h.Register(ws, gr.id)
	return nil
}

func (s *Srv) clientID(r *http.Request) string {
	c, err := r.Cookie(authCookie)
	if err != nil {
		return ""
	}

	var id string
	if err := s.sc.Decode("auth", c.Value, &id); err != nil {
		// If we can't parse it, assume it's an old auth cookie and treat them as
		// a new client.
		return ""
	}
	return id
}

func (s *Srv) setClientID(w http.ResponseWriter, id string) error {
	encoded, err := s.sc.Encode("auth", id)
	if err != nil {
		return fmt.Errorf("failed to encode auth cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// LoadKeys reads the cookie keys from the given files, generating and saving
// new keys for any that don't exist yet.
func LoadKeys(hashFile, blockFile string) (*securecookie.SecureCookie, error) {
	hashKey, err := loadOrGenKey(hashFile)
	if err != nil {
		return nil, err
	}

	blockKey, err := loadOrGenKey(blockFile)
	if err != nil {
		return nil, err
	}

	return securecookie.New(hashKey, blockKey), nil
}

func loadOrGenKey(name string) ([]byte, error) {
	f, err := os.ReadFile(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key %q: %w", name, err)
	}

	dat := securecookie.GenerateRandomKey(32)
	if dat == nil {
		return nil, errors.New("failed to generate key")
	}

	if err := os.WriteFile(name, dat, 0600); err != nil {
		return nil, fmt.Errorf("failed to write key %q: %w", name, err)
	}
	return dat, nil
}

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("jsonResp: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
