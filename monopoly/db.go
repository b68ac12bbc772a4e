package monopoly

import (
	"bytes"
	"errors"
	"math/rand"
)

var (
	ErrGameNotFound = errors.New("monopoly: game not found")
)

type GameID string

type GameStatus string

const (
	// NoStatus is an error case.
	NoStatus = GameStatus("")
	// Game has players but hasn't had a turn yet.
	Pending = GameStatus("PENDING")
	// Game is in progress.
	Playing = GameStatus("PLAYING")
	// Game has hit its turn limit.
	Finished = GameStatus("FINISHED")
)

// Game is a stored game, as the server and its databases see it.
type Game struct {
	ID     GameID     `json:"id"`
	Status GameStatus `json:"status"`
	// MaxTurns is how many turns the game runs for, 0 meaning no limit.
	MaxTurns int        `json:"max_turns"`
	State    *GameState `json:"state"`
}

// GameState is a snapshot of a board between turns.
type GameState struct {
	Turn    int            `json:"turn"`
	Players []*PlayerState `json:"players"`
	Spaces  []*SpaceState  `json:"spaces"`
}

type PlayerState struct {
	Name      string `json:"name"`
	Automated bool   `json:"automated"`
	Capital   Money  `json:"capital"`
	Position  int    `json:"position"`
	InJail    bool   `json:"in_jail"`
	JailCards int    `json:"jail_cards"`
	// Owned holds board indices, in acquisition order.
	Owned []int `json:"owned"`
}

type SpaceState struct {
	Index int       `json:"index"`
	Name  string    `json:"name"`
	Kind  SpaceKind `json:"kind"`
	// Owner is the owning player's name, if any.
	Owner  string `json:"owner,omitempty"`
	Houses int    `json:"houses,omitempty"`
}

// DB stores games between turns.
type DB interface {
	NewGame(*Game) (GameID, error)
	Game(GameID) (*Game, error)
	Games() ([]GameID, error)
	UpdateStatus(GameID, GameStatus) error
	UpdateState(GameID, *GameState) error
}

// State takes a snapshot of the board.
func (b *Board) State() *GameState {
	gs := &GameState{Turn: b.turn}
	for _, p := range b.players {
		ps := &PlayerState{
			Name:      p.name,
			Automated: p.automated,
			Capital:   p.capital,
			Position:  p.position,
			InJail:    p.inJail,
			JailCards: p.jailCards,
			Owned:     []int{},
		}
		for _, s := range p.owned {
			ps.Owned = append(ps.Owned, b.IndexOf(s))
		}
		gs.Players = append(gs.Players, ps)
	}

	for i, s := range b.spaces {
		ss := &SpaceState{Index: i, Name: "Go", Kind: KindOf(s)}
		if s != nil {
			ss.Name = s.Name()
		}
		switch s := s.(type) {
		case *Property:
			ss.Houses = s.houses
			ss.Owner = ownerName(s.owner)
		case *Station:
			ss.Owner = ownerName(s.owner)
		case *Utility:
			ss.Owner = ownerName(s.owner)
		}
		gs.Spaces = append(gs.Spaces, ss)
	}
	return gs
}

func ownerName(p *Player) string {
	if p == nil {
		return ""
	}
	return p.name
}

func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	gc := *g
	gc.State = g.State.Clone()
	return &gc
}

func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	out := &GameState{Turn: gs.Turn}
	for _, ps := range gs.Players {
		pc := *ps
		pc.Owned = append([]int{}, ps.Owned...)
		out.Players = append(out.Players, &pc)
	}
	for _, ss := range gs.Spaces {
		sc := *ss
		out.Spaces = append(out.Spaces, &sc)
	}
	return out
}

// Words are the tokens game IDs are built from.
var Words = []string{
	"Boot", "Iron", "Thimble", "Hat", "Dog", "Car", "Ship", "Barrow",
	"Horse", "Cannon", "Mayfair", "Strand", "Bow", "Angel", "Euston",
	"Fleet", "Oxford", "Regent", "Bond", "Piccadilly", "Pall", "Mall",
	"Whitehall", "Vine", "Marlborough", "Leicester", "Coventry", "Park",
	"Lane", "Kings", "Cross", "Marylebone", "Fenchurch", "Liverpool",
	"Trafalgar", "Northumberland", "Whitechapel", "Kent", "Pentonville",
}

// RandomGameID builds an ID from three random words, like "BootStrandAngel".
func RandomGameID(r *rand.Rand) GameID {
	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		buf.WriteString(Words[r.Intn(len(Words))])
	}
	return GameID(buf.String())
}
