package web

import (
	"github.com/TomBebb/Monopoly/monopoly"
)

// presenter records a game's notifications as Events. Web games only have
// automated players, so it's never asked to decide anything that matters; the
// Decider methods refuse everything.
type presenter struct {
	events []*Event
}

// take returns the events recorded since the last call.
func (p *presenter) take() []*Event {
	evs := p.events
	p.events = nil
	return evs
}

func (p *presenter) add(e *Event) {
	p.events = append(p.events, e)
}

func (p *presenter) PlayerLanded(pl *monopoly.Player, s monopoly.Space) {
	p.add(&Event{Type: EventLanded, Player: pl.Name(), Space: s.Name()})
}

func (p *presenter) PlayerPaidRent(pl, owner *monopoly.Player, s monopoly.Space, amount monopoly.Money) {
	p.add(&Event{Type: EventPaidRent, Player: pl.Name(), Owner: owner.Name(), Space: s.Name(), Amount: amount.String()})
}

func (p *presenter) PlayerBought(pl *monopoly.Player, s monopoly.Space, cost monopoly.Money) {
	p.add(&Event{Type: EventBought, Player: pl.Name(), Space: s.Name(), Amount: cost.String()})
}

func (p *presenter) PlayerTaxed(pl *monopoly.Player, t *monopoly.Tax) {
	p.add(&Event{Type: EventTaxed, Player: pl.Name(), Space: t.Name(), Amount: t.Amount.String()})
}

func (p *presenter) PlayerSentToJail(pl *monopoly.Player) {
	p.add(&Event{Type: EventSentToJail, Player: pl.Name()})
}

func (p *presenter) PlayerFreedFromJail(pl *monopoly.Player, cause monopoly.EscapeJailCause) {
	p.add(&Event{Type: EventFreedFromJail, Player: pl.Name(), Cause: cause.String()})
}

func (p *presenter) PlayerStillInJail(pl *monopoly.Player) {
	p.add(&Event{Type: EventStillInJail, Player: pl.Name()})
}

func (p *presenter) PlayerRolled(pl *monopoly.Player, die1, die2 int, doubles bool) {
	p.add(&Event{Type: EventRolled, Player: pl.Name(), Dice: []int{die1, die2}, Doubles: doubles})
}

func (p *presenter) PlayerCapitalChanged(pl *monopoly.Player) {
	p.add(&Event{Type: EventCapitalChanged, Player: pl.Name(), Amount: pl.Capital().String()})
}

func (p *presenter) PlayerPickedCard(pl *monopoly.Player, c monopoly.Card) {
	p.add(&Event{Type: EventPickedCard, Player: pl.Name(), Card: c.String()})
}

func (p *presenter) PlayerAddedHouse(owner *monopoly.Player, prop *monopoly.Property, hotel bool) {
	p.add(&Event{Type: EventAddedHouse, Player: owner.Name(), Space: prop.Name(), Hotel: hotel})
}

func (p *presenter) PlayerPassedGo(pl *monopoly.Player) {
	p.add(&Event{Type: EventPassedGo, Player: pl.Name()})
}

func (p *presenter) BeforeTurn(b *monopoly.Board) {
	p.add(&Event{Type: EventTurnStart, Turn: b.Turn()})
}

func (p *presenter) ShouldBuy(*monopoly.Player, monopoly.Space, monopoly.Money) bool { return false }
func (p *presenter) ShouldPayOutOfJail(*monopoly.Player) bool                       { return false }
func (p *presenter) ShouldUseJailCard(*monopoly.Player) bool                        { return false }
