package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/TomBebb/Monopoly/boardgen"
	"github.com/TomBebb/Monopoly/monopoly"
)

var ErrGameOver = errors.New("game: turn limit reached")

// Game is a session of Monopoly: a board, its players, and an optional turn
// limit. Turns can be played one at a time with Turn, which is what the web
// server does, or all at once with Play.
type Game struct {
	board *monopoly.Board
	cfg   *Config
}

// Config holds configuration options for a game of Monopoly.
type Config struct {
	// Layout is the board to play on. If nil, the standard board is used.
	Layout *boardgen.Layout
	// Players take their turns in this order.
	Players []PlayerSpec

	Presenter monopoly.Presenter
	Random    monopoly.RandomSource

	// MaxTurns ends the game after that many turns. Zero means the game never
	// ends on its own.
	MaxTurns int
}

type PlayerSpec struct {
	Name string
	// Automated players make every decision themselves instead of asking the
	// presenter.
	Automated bool
}

// New validates and initializes a game of Monopoly.
func New(cfg *Config) (*Game, error) {
	if cfg.Presenter == nil {
		return nil, errors.New("Presenter cannot be nil")
	}
	if cfg.Random == nil {
		return nil, errors.New("Random cannot be nil")
	}
	if cfg.MaxTurns < 0 {
		return nil, fmt.Errorf("MaxTurns must be zero or more, was %d", cfg.MaxTurns)
	}
	if len(cfg.Players) < 2 {
		return nil, monopoly.ErrNotEnoughPlayers
	}

	layout := cfg.Layout
	if layout == nil {
		layout = boardgen.Standard()
	}
	b, err := boardgen.NewBoard(layout, cfg.Presenter, cfg.Random)
	if err != nil {
		return nil, fmt.Errorf("invalid board given: %w", err)
	}

	for _, ps := range cfg.Players {
		if _, err := b.AddPlayer(ps.Name, ps.Automated); err != nil {
			return nil, fmt.Errorf("AddPlayer(%q): %w", ps.Name, err)
		}
	}

	return &Game{board: b, cfg: cfg}, nil
}

func (g *Game) Board() *monopoly.Board { return g.board }

// Over reports whether the turn limit has been played out.
func (g *Game) Over() bool {
	return g.cfg.MaxTurns > 0 && g.board.Turn() > g.cfg.MaxTurns
}

// Turn plays a single turn for every player and returns the board afterwards.
func (g *Game) Turn() (*monopoly.GameState, monopoly.GameStatus, error) {
	if g.Over() {
		return nil, "", ErrGameOver
	}
	if err := g.board.RunTurn(); err != nil {
		return nil, "", fmt.Errorf("RunTurn on turn %d: %w", g.board.Turn(), err)
	}

	status := monopoly.Playing
	if g.Over() {
		status = monopoly.Finished
	}
	return g.board.State(), status, nil
}

type Outcome struct {
	// Turns is how many turns were played.
	Turns int `json:"turns"`
	// Standings lists players from richest to poorest. Ties keep turn order.
	Standings []*Standing `json:"standings"`
}

type Standing struct {
	Name    string         `json:"name"`
	Capital monopoly.Money `json:"capital"`
	// Owned is how many spaces the player holds.
	Owned int `json:"owned"`
}

// Play runs turns until the game is over. With no turn limit, it only returns
// on error.
func (g *Game) Play() (*Outcome, error) {
	for !g.Over() {
		if _, _, err := g.Turn(); err != nil {
			return nil, err
		}
	}
	return g.Outcome(), nil
}

// Outcome ranks the players as they stand now.
func (g *Game) Outcome() *Outcome {
	out := &Outcome{Turns: g.board.Turn() - 1}
	for _, p := range g.board.Players() {
		out.Standings = append(out.Standings, &Standing{
			Name:    p.Name(),
			Capital: p.Capital(),
			Owned:   len(p.Owned()),
		})
	}
	sort.SliceStable(out.Standings, func(i, j int) bool {
		return out.Standings[i].Capital.GreaterThan(out.Standings[j].Capital)
	})
	return out
}
