package monopoly

// EscapeJailCause is how a player got out of jail.
type EscapeJailCause int

const (
	CauseJailCard EscapeJailCause = iota
	CausePaid
	CauseDoubles
)

func (c EscapeJailCause) String() string {
	switch c {
	case CauseJailCard:
		return "Get Out of Jail Free card"
	case CausePaid:
		return "Paid"
	case CauseDoubles:
		return "Doubles"
	}
	return ""
}

// Notifier is told about everything that happens during a turn. None of the
// methods can affect the game.
type Notifier interface {
	PlayerLanded(p *Player, s Space)
	PlayerPaidRent(p, owner *Player, s Space, amount Money)
	PlayerBought(p *Player, s Space, cost Money)
	PlayerTaxed(p *Player, t *Tax)
	PlayerSentToJail(p *Player)
	PlayerFreedFromJail(p *Player, cause EscapeJailCause)
	PlayerStillInJail(p *Player)
	PlayerRolled(p *Player, die1, die2 int, doubles bool)
	PlayerCapitalChanged(p *Player)
	PlayerPickedCard(p *Player, c Card)
	PlayerAddedHouse(owner *Player, prop *Property, hotel bool)
	PlayerPassedGo(p *Player)
}

// Decider makes the choices players who aren't automated need to make. Each
// call blocks the game until it returns, and the answers are taken as valid.
type Decider interface {
	// BeforeTurn is called once at the start of every turn. Implementations
	// may use it for voluntary actions, like Board.AddHouse.
	BeforeTurn(b *Board)
	ShouldBuy(p *Player, s Space, cost Money) bool
	ShouldPayOutOfJail(p *Player) bool
	ShouldUseJailCard(p *Player) bool
}

// Presenter is everything the game needs from whatever is displaying it, be it
// a terminal, a web page or a test.
type Presenter interface {
	Notifier
	Decider
}
