// Package dice provides the sources of randomness a game is played with.
package dice

import (
	"math/rand"

	"github.com/TomBebb/Monopoly/monopoly"
)

// Sides is the number of faces on each die.
const Sides = 6

// Source rolls dice and draws cards using a *rand.Rand. Like the *rand.Rand
// it wraps, it isn't safe for concurrent use.
type Source struct {
	r *rand.Rand
}

func New(r *rand.Rand) *Source {
	return &Source{r: r}
}

func (s *Source) RollDie() int {
	return s.r.Intn(Sides) + 1
}

func (s *Source) PickCard() monopoly.Card {
	return monopoly.ChanceCards[s.r.Intn(len(monopoly.ChanceCards))]
}

// Scripted replays fixed rolls and cards in order, for tests and replays. It
// panics when asked for more than it was given.
type Scripted struct {
	Rolls []int
	Cards []monopoly.Card
}

func (s *Scripted) RollDie() int {
	if len(s.Rolls) == 0 {
		panic("dice: ran out of scripted rolls")
	}
	v := s.Rolls[0]
	s.Rolls = s.Rolls[1:]
	return v
}

func (s *Scripted) PickCard() monopoly.Card {
	if len(s.Cards) == 0 {
		panic("dice: ran out of scripted cards")
	}
	c := s.Cards[0]
	s.Cards = s.Cards[1:]
	return c
}

// Remaining reports how many rolls haven't been used yet.
func (s *Scripted) Remaining() int {
	return len(s.Rolls)
}
