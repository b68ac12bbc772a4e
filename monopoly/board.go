package monopoly

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBoard     = errors.New("monopoly: invalid board")
	ErrGameStarted      = errors.New("monopoly: game already started")
	ErrNotEnoughPlayers = errors.New("monopoly: at least two players are needed")
	ErrDuplicatePlayer  = errors.New("monopoly: player name already taken")
)

// Board is the game: the ring of spaces, the players, and whose turn it is.
type Board struct {
	spaces []Space
	jail   int

	players []*Player
	turn    int
	current int

	pr  Presenter
	rnd RandomSource
}

// NewBoard validates the given spaces and returns a board ready for players.
// A nil entry in spaces is an empty square, conventionally Go at index 0.
func NewBoard(spaces []Space, jail int, pr Presenter, rnd RandomSource) (*Board, error) {
	if pr == nil {
		return nil, errors.New("presenter cannot be nil")
	}
	if rnd == nil {
		return nil, errors.New("random source cannot be nil")
	}
	if err := Validate(spaces, jail); err != nil {
		return nil, err
	}

	return &Board{
		spaces: spaces,
		jail:   jail,
		turn:   1,
		pr:     pr,
		rnd:    rnd,
	}, nil
}

// Validate checks spaces the way NewBoard does, without making a board.
func Validate(spaces []Space, jail int) error {
	if err := validateSpaces(spaces, jail); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return nil
}

func validateSpaces(spaces []Space, jail int) error {
	if len(spaces) == 0 {
		return errors.New("board has no spaces")
	}
	if jail < 0 || jail >= len(spaces) {
		return fmt.Errorf("jail index %d is outside a board of %d spaces", jail, len(spaces))
	}
	if _, ok := spaces[jail].(*Jail); !ok {
		return fmt.Errorf("space %d is %q, not the jail", jail, KindOf(spaces[jail]))
	}

	seen := make(map[Space]bool)
	for i, s := range spaces {
		if s == nil {
			continue
		}
		if seen[s] {
			return fmt.Errorf("space %d (%s) appears more than once", i, s.Name())
		}
		seen[s] = true

		switch s := s.(type) {
		case *Property:
			if len(s.Rents) < 2 {
				return fmt.Errorf("property %q needs at least 2 rent values, has %d", s.Name(), len(s.Rents))
			}
			if s.Family == "" {
				return fmt.Errorf("property %q has no family", s.Name())
			}
			if s.Cost.IsNegative() || s.HouseCost.IsNegative() {
				return fmt.Errorf("property %q has a negative price", s.Name())
			}
			if s.owner != nil || s.houses != 0 {
				return fmt.Errorf("property %q has already been played on", s.Name())
			}
		case *Tax:
			if s.Amount.IsNegative() {
				return fmt.Errorf("tax %q is negative", s.Name())
			}
		case *Station:
			if s.owner != nil {
				return fmt.Errorf("station %q has already been played on", s.Name())
			}
		case *Utility:
			if s.owner != nil {
				return fmt.Errorf("utility %q has already been played on", s.Name())
			}
		}
	}
	return nil
}

// AddPlayer registers a new player. Players take their turns in the order they
// were added, and can only be added before the first turn.
func (b *Board) AddPlayer(name string, automated bool) (*Player, error) {
	if b.turn > 1 {
		return nil, ErrGameStarted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player name cannot be empty")
	}
	for _, p := range b.players {
		if p.name == name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
		}
	}

	p := &Player{
		board:     b,
		name:      name,
		automated: automated,
		capital:   StartingCapital,
	}
	b.players = append(b.players, p)
	return p, nil
}

// RunTurn plays one full turn: the presenter's BeforeTurn hook, then every
// player rolls once, in order.
func (b *Board) RunTurn() error {
	if len(b.players) < 2 {
		return ErrNotEnoughPlayers
	}

	b.pr.BeforeTurn(b)
	for i, p := range b.players {
		b.current = i
		p.TakeTurn()
	}
	b.turn++
	return nil
}

// PassedGo credits the player for wrapping around the board.
func (b *Board) PassedGo(p *Player) {
	p.Gain(PassGoBonus)
	b.pr.PlayerPassedGo(p)
}

func (b *Board) RollDie() int         { return b.rnd.RollDie() }
func (b *Board) PickChanceCard() Card { return b.rnd.PickCard() }

// Turn is the current turn number, starting at 1.
func (b *Board) Turn() int { return b.turn }

// CurrentPlayer is the player whose turn it is, or was most recently.
func (b *Board) CurrentPlayer() *Player {
	if len(b.players) == 0 {
		return nil
	}
	return b.players[b.current]
}

func (b *Board) Players() []*Player {
	out := make([]*Player, len(b.players))
	copy(out, b.players)
	return out
}

// Player returns the player with the given name.
func (b *Board) Player(name string) (*Player, bool) {
	for _, p := range b.players {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (b *Board) Spaces() []Space {
	out := make([]Space, len(b.spaces))
	copy(out, b.spaces)
	return out
}

func (b *Board) Len() int       { return len(b.spaces) }
func (b *Board) JailIndex() int { return b.jail }

// Space returns the space at index i, which may be nil.
func (b *Board) Space(i int) Space { return b.spaces[i] }

// IndexOf returns where the space sits on the board, or -1.
func (b *Board) IndexOf(s Space) int {
	for i, sp := range b.spaces {
		if sp != nil && sp == s {
			return i
		}
	}
	return -1
}

// AddHouse builds a house on the property for its owner, if the rules allow
// it. It returns whether a house was built.
func (b *Board) AddHouse(prop *Property) bool {
	if !prop.CanAddHouse() {
		return false
	}
	owner := prop.owner
	if !owner.Charge(prop.HouseCost) {
		return false
	}
	prop.houses++
	b.pr.PlayerAddedHouse(owner, prop, prop.HasHotel())
	return true
}

func (b *Board) familySize(f Family) int {
	var n int
	for _, s := range b.spaces {
		if prop, ok := s.(*Property); ok && prop.Family == f {
			n++
		}
	}
	return n
}

// move advances the player, crediting them if they wrap past the end of the
// board, then resolves the space they land on.
func (b *Board) move(p *Player, steps int) {
	raw := p.position + steps
	p.position = raw % len(b.spaces)
	if raw >= len(b.spaces) {
		b.PassedGo(p)
	}
	b.land(p, b.spaces[p.position])
}

func (b *Board) land(p *Player, s Space) {
	if s == nil {
		return
	}
	b.pr.PlayerLanded(p, s)

	switch s := s.(type) {
	case *Property:
		b.landOwnable(p, s, &s.ownable, s.Cost, s.Rent)
	case *Station:
		b.landOwnable(p, s, &s.ownable, s.Cost, s.Rent)
	case *Utility:
		b.landOwnable(p, s, &s.ownable, s.Cost, func() Money { return s.Rent(p.lastRoll) })
	case *Tax:
		p.Charge(s.Amount)
		b.pr.PlayerTaxed(p, s)
	case *GoToJail:
		p.SendToJail()
	case *Chance:
		card := b.PickChanceCard()
		b.pr.PlayerPickedCard(p, card)
		card.apply(p)
	case *Plain, *Jail, *CommunityChest:
		// Nothing beyond the notification.
	}
}

// landOwnable either collects rent for the owner or offers the space for sale.
// Owners collect nothing from themselves or while they're in jail. A visitor
// who can't cover the rent pays nothing.
func (b *Board) landOwnable(p *Player, s Space, o *ownable, cost Money, rent func() Money) {
	owner := o.owner
	switch {
	case owner == nil:
		if p.decideBuy(s, cost) && p.Charge(cost) {
			b.acquire(p, s, o)
			b.pr.PlayerBought(p, s, cost)
		}
	case owner != p && !owner.inJail:
		amount := rent()
		if p.Charge(amount) {
			owner.Gain(amount)
			b.pr.PlayerPaidRent(p, owner, s, amount)
		}
	}
}

// acquire is the only place ownership changes. The back-reference on the space
// and the player's owned list are always updated together.
func (b *Board) acquire(p *Player, s Space, o *ownable) {
	o.owner = p
	p.owned = append(p.owned, s)
}
