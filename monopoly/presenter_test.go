package monopoly

import (
	"fmt"
	"testing"
)

// recorder is a Presenter that writes every call down and answers decisions
// from its fields.
type recorder struct {
	events []string

	buy        bool
	payJail    bool
	useCard    bool
	beforeTurn func(*Board)
}

func (r *recorder) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) PlayerLanded(p *Player, s Space) {
	r.add("%s landed on %s", p.Name(), s.Name())
}

func (r *recorder) PlayerPaidRent(p, owner *Player, s Space, amount Money) {
	r.add("%s paid %s %s for %s", p.Name(), owner.Name(), amount, s.Name())
}

func (r *recorder) PlayerBought(p *Player, s Space, cost Money) {
	r.add("%s bought %s for %s", p.Name(), s.Name(), cost)
}

func (r *recorder) PlayerTaxed(p *Player, t *Tax) {
	r.add("%s taxed %s", p.Name(), t.Amount)
}

func (r *recorder) PlayerSentToJail(p *Player) {
	r.add("%s sent to jail", p.Name())
}

func (r *recorder) PlayerFreedFromJail(p *Player, cause EscapeJailCause) {
	r.add("%s freed: %s", p.Name(), cause)
}

func (r *recorder) PlayerStillInJail(p *Player) {
	r.add("%s still in jail", p.Name())
}

func (r *recorder) PlayerRolled(p *Player, die1, die2 int, doubles bool) {
	r.add("%s rolled %d %d doubles=%t", p.Name(), die1, die2, doubles)
}

func (r *recorder) PlayerCapitalChanged(p *Player) {
	r.add("%s has %s", p.Name(), p.Capital())
}

func (r *recorder) PlayerPickedCard(p *Player, c Card) {
	r.add("%s picked %s", p.Name(), c)
}

func (r *recorder) PlayerAddedHouse(owner *Player, prop *Property, hotel bool) {
	r.add("%s built on %s hotel=%t", owner.Name(), prop.Name(), hotel)
}

func (r *recorder) PlayerPassedGo(p *Player) {
	r.add("%s passed go", p.Name())
}

func (r *recorder) BeforeTurn(b *Board) {
	r.add("turn %d", b.Turn())
	if r.beforeTurn != nil {
		r.beforeTurn(b)
	}
}

func (r *recorder) ShouldBuy(p *Player, s Space, cost Money) bool {
	r.add("%s asked to buy %s for %s", p.Name(), s.Name(), cost)
	return r.buy
}

func (r *recorder) ShouldPayOutOfJail(p *Player) bool {
	r.add("%s asked to pay out of jail", p.Name())
	return r.payJail
}

func (r *recorder) ShouldUseJailCard(p *Player) bool {
	r.add("%s asked to use a card", p.Name())
	return r.useCard
}

// script is a RandomSource that replays fixed values.
type script struct {
	rolls []int
	cards []Card
}

func (s *script) RollDie() int {
	if len(s.rolls) == 0 {
		panic("out of rolls")
	}
	v := s.rolls[0]
	s.rolls = s.rolls[1:]
	return v
}

func (s *script) PickCard() Card {
	if len(s.cards) == 0 {
		panic("out of cards")
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

// testSpaces is a small board:
//
//	0 Go, 1 Old Kent Road, 2 Community Chest, 3 Whitechapel Road,
//	4 Income Tax, 5 Kings Cross, 6 The Angel Islington, 7 Chance,
//	8 Electric Company, 9 Jail, 10 Go to Jail, 11 Marylebone
func testSpaces() []Space {
	return []Space{
		nil,
		NewProperty("Old Kent Road", Brown, M(60), M(50), M(30), M(2), M(10), M(30), M(90), M(160), M(250)),
		NewCommunityChest(),
		NewProperty("Whitechapel Road", Brown, M(60), M(50), M(30), M(4), M(20), M(60), M(180), M(360), M(450)),
		NewTax("Income Tax", M(200)),
		NewStation("Kings Cross Station"),
		NewProperty("The Angel Islington", LightBlue, M(100), M(50), M(50), M(6), M(30), M(90), M(270), M(400), M(550)),
		NewChance(),
		NewUtility("Electric Company"),
		NewJail(),
		NewGoToJail(),
		NewStation("Marylebone Station"),
	}
}

const testJail = 9

type testEnv struct {
	b   *Board
	rec *recorder
	rnd *script
}

func setup(t *testing.T, players ...string) *testEnv {
	t.Helper()
	return setupWith(t, testSpaces(), testJail, players...)
}

func setupWith(t *testing.T, spaces []Space, jail int, players ...string) *testEnv {
	t.Helper()
	rec := &recorder{}
	rnd := &script{}
	b, err := NewBoard(spaces, jail, rec, rnd)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	for _, name := range players {
		if _, err := b.AddPlayer(name, false); err != nil {
			t.Fatalf("AddPlayer(%q): %v", name, err)
		}
	}
	return &testEnv{b: b, rec: rec, rnd: rnd}
}

func (env *testEnv) player(t *testing.T, name string) *Player {
	t.Helper()
	p, ok := env.b.Player(name)
	if !ok {
		t.Fatalf("no player named %q", name)
	}
	return p
}

// give hands the space to the player the same way a purchase would.
func (env *testEnv) give(t *testing.T, name string, idx int) {
	t.Helper()
	p := env.player(t, name)
	switch s := env.b.Space(idx).(type) {
	case *Property:
		env.b.acquire(p, s, &s.ownable)
	case *Station:
		env.b.acquire(p, s, &s.ownable)
	case *Utility:
		env.b.acquire(p, s, &s.ownable)
	default:
		t.Fatalf("space %d isn't ownable", idx)
	}
}

func (env *testEnv) rolls(vs ...int) {
	env.rnd.rolls = append(env.rnd.rolls, vs...)
}

func (env *testEnv) reset() {
	env.rec.events = nil
}
