package monopoly

// Card is a chance card. Each card has exactly one effect.
type Card int

const (
	// GetOutOfJailFreeCard grants the player a token they can later spend to
	// leave jail.
	GetOutOfJailFreeCard Card = iota
	// GoToJailCard sends the player straight to jail.
	GoToJailCard
)

// ChanceCards is the deck chance cards are drawn from. Drawing doesn't consume
// cards, so the deck never changes.
var ChanceCards = []Card{
	GetOutOfJailFreeCard,
	GoToJailCard,
}

func (c Card) String() string {
	switch c {
	case GetOutOfJailFreeCard:
		return "Get Out of Jail Free"
	case GoToJailCard:
		return "Go to Jail"
	}
	return "Unknown Card"
}

func (c Card) apply(p *Player) {
	switch c {
	case GetOutOfJailFreeCard:
		p.jailCards++
	case GoToJailCard:
		p.SendToJail()
	}
}

// RandomSource is where all of the game's randomness comes from.
type RandomSource interface {
	// RollDie returns a value in [1, 6].
	RollDie() int
	// PickCard returns a card from ChanceCards.
	PickCard() Card
}
