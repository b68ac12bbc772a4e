package monopoly

// Player is a participant in the game. Players are created by Board.AddPlayer
// and are never removed.
type Player struct {
	board *Board

	name      string
	automated bool

	capital      Money
	position     int
	inJail       bool
	rolledDouble bool
	lastMoved    int
	lastRoll     int
	jailCards    int

	// owned is in acquisition order.
	owned []Space
}

func (p *Player) Name() string { return p.name }

// Automated players have their decisions made by a default policy instead of
// the Presenter.
func (p *Player) Automated() bool    { return p.automated }
func (p *Player) Capital() Money     { return p.capital }
func (p *Player) Position() int      { return p.position }
func (p *Player) InJail() bool       { return p.inJail }
func (p *Player) RolledDouble() bool { return p.rolledDouble }

// LastMoved is how many spaces the player moved on their last turn.
func (p *Player) LastMoved() int { return p.lastMoved }
func (p *Player) JailCards() int { return p.jailCards }

// Owned returns the spaces the player holds, in the order they were bought.
func (p *Player) Owned() []Space {
	out := make([]Space, len(p.owned))
	copy(out, p.owned)
	return out
}

func (p *Player) String() string {
	return "Player " + p.name
}

// Charge takes amount from the player. If they can't afford it, nothing
// changes and Charge returns false.
func (p *Player) Charge(amount Money) bool {
	if amount.GreaterThan(p.capital) {
		return false
	}
	p.capital = p.capital.Sub(amount)
	p.board.pr.PlayerCapitalChanged(p)
	return true
}

// Gain credits amount to the player.
func (p *Player) Gain(amount Money) {
	p.capital = p.capital.Add(amount)
	p.board.pr.PlayerCapitalChanged(p)
}

// SendToJail moves the player straight to the jail cell, without passing Go.
func (p *Player) SendToJail() {
	p.inJail = true
	p.position = p.board.jail
	p.board.pr.PlayerSentToJail(p)
}

// FreeFromJail lets the player out.
func (p *Player) FreeFromJail(cause EscapeJailCause) {
	p.board.pr.PlayerFreedFromJail(p, cause)
	p.inJail = false
}

// HasAll reports whether the player owns every property of the family on the
// board.
func (p *Player) HasAll(f Family) bool {
	var owned int
	for _, s := range p.owned {
		if prop, ok := s.(*Property); ok && prop.Family == f {
			owned++
		}
	}
	return owned == p.board.familySize(f)
}

// Stations is how many stations the player owns.
func (p *Player) Stations() int {
	var n int
	for _, s := range p.owned {
		if _, ok := s.(*Station); ok {
			n++
		}
	}
	return n
}

// Utilities is how many utilities the player owns.
func (p *Player) Utilities() int {
	var n int
	for _, s := range p.owned {
		if _, ok := s.(*Utility); ok {
			n++
		}
	}
	return n
}

// TakeTurn plays out the player's part of a turn: getting out of jail if they
// can, building a house if they're automated, rolling, and moving.
func (p *Player) TakeTurn() {
	b := p.board

	if p.inJail && p.capital.GreaterThanOrEqual(JailFee) {
		if p.automated || b.pr.ShouldPayOutOfJail(p) {
			p.FreeFromJail(CausePaid)
			p.Charge(JailFee)
		}
	}
	if p.inJail && p.jailCards > 0 {
		if p.automated || b.pr.ShouldUseJailCard(p) {
			p.jailCards--
			p.FreeFromJail(CauseJailCard)
		}
	}

	if p.automated {
		if prop := p.lastImprovable(); prop != nil {
			b.AddHouse(prop)
		}
	}

	// Doubles earn a re-roll, but only the final pair moves the player. A
	// jailed player gets exactly one roll.
	var die1, die2 int
	for {
		die1, die2 = b.RollDie(), b.RollDie()
		p.rolledDouble = die1 == die2
		b.pr.PlayerRolled(p, die1, die2, p.rolledDouble)
		if !p.rolledDouble || p.inJail {
			break
		}
	}

	p.advance(die1, die2)
}

// advance resolves the roll: either an attempt to leave jail, or a move.
func (p *Player) advance(die1, die2 int) {
	p.lastRoll = die1 + die2
	if p.inJail {
		p.lastMoved = 0
		if p.rolledDouble {
			p.FreeFromJail(CauseDoubles)
		} else {
			p.board.pr.PlayerStillInJail(p)
		}
		return
	}
	p.lastMoved = die1 + die2
	p.board.move(p, p.lastMoved)
}

// lastImprovable returns the most recently acquired property the player can
// build on, or nil.
func (p *Player) lastImprovable() *Property {
	for i := len(p.owned) - 1; i >= 0; i-- {
		if prop, ok := p.owned[i].(*Property); ok && prop.CanAddHouse() {
			return prop
		}
	}
	return nil
}

func (p *Player) decideBuy(s Space, cost Money) bool {
	if p.automated {
		return cost.LessThan(p.capital)
	}
	return p.board.pr.ShouldBuy(p, s, cost)
}
