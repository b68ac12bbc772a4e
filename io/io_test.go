package io

import (
	"errors"
	"strings"
	"testing"

	"github.com/TomBebb/Monopoly/dice"
	"github.com/TomBebb/Monopoly/game"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/google/go-cmp/cmp"
)

func newConsole(input string) (*Console, *strings.Builder) {
	var out strings.Builder
	return NewConsole(strings.NewReader(input), &out), &out
}

func TestPromptBool(t *testing.T) {
	c, out := newConsole("maybe\n\nYes\nn\n")

	got, err := c.PromptBool("Well?")
	if err != nil {
		t.Fatalf("PromptBool: %v", err)
	}
	if !got {
		t.Error("first answer = false, want true")
	}
	if n := strings.Count(out.String(), "Expected y or n"); n != 2 {
		t.Errorf("complained %d times, want 2", n)
	}

	if got, err = c.PromptBool("Well?"); err != nil || got {
		t.Errorf("second answer = %t, %v, want false, nil", got, err)
	}

	if _, err := c.PromptBool("Well?"); !errors.Is(err, ErrNoInput) {
		t.Errorf("PromptBool with no input left: %v, want %v", err, ErrNoInput)
	}
}

func TestPromptChoice(t *testing.T) {
	c, out := newConsole("0\nthree\n3\n2\n")

	got, err := c.PromptChoice("Pick one", []string{"a", "b"})
	if err != nil {
		t.Fatalf("PromptChoice: %v", err)
	}
	if got != 1 {
		t.Errorf("picked %d, want 1", got)
	}
	if n := strings.Count(out.String(), "Expected a number from 1 to 2"); n != 3 {
		t.Errorf("complained %d times, want 3", n)
	}
}

func TestPromptPlayers(t *testing.T) {
	c, out := newConsole(strings.Join([]string{
		"9", // Too many.
		"2",
		"Ann",
		"n",
		"Ann", // Taken.
		"",
		"Bob",
		"y",
	}, "\n"))

	got, err := c.PromptPlayers(2, 8)
	if err != nil {
		t.Fatalf("PromptPlayers: %v", err)
	}

	want := []game.PlayerSpec{
		{Name: "Ann"},
		{Name: "Bob", Automated: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected players (-want +got)\n%s", diff)
	}
	if !strings.Contains(out.String(), `"Ann" is already playing`) {
		t.Errorf("output didn't mention the repeated name:\n%s", out)
	}
}

func TestDecidersDeclineWithoutInput(t *testing.T) {
	c, _ := newConsole("")
	b, err := monopoly.NewBoard(testSpaces(), 4, c, &dice.Scripted{})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	p, err := b.AddPlayer("Ann", false)
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	if c.ShouldBuy(p, b.Space(1), monopoly.M(60)) {
		t.Error("ShouldBuy = true with no input")
	}
	if c.ShouldPayOutOfJail(p) || c.ShouldUseJailCard(p) {
		t.Error("jail deciders said yes with no input")
	}
	if !errors.Is(c.Err(), ErrNoInput) {
		t.Errorf("Err = %v, want %v", c.Err(), ErrNoInput)
	}
}

func TestPlayOnConsole(t *testing.T) {
	c, out := newConsole(strings.Join([]string{
		"y", // Ann buys Old Kent Road.
		"y", // Before turn 2, Ann acts on a property...
		"1", // ...Old Kent Road...
		"2", // ...and tries to build, but doesn't own Whitechapel.
		"n", // Ann's done.
	}, "\n"))

	rolls := &dice.Scripted{Rolls: []int{
		2, 4, // Ann passes Go onto Old Kent Road.
		3, 4, // Bob passes Go onto Whitechapel.
		1, 2, // Ann visits jail.
		1, 3, // Bob passes Go onto Old Kent Road.
	}}
	b, err := monopoly.NewBoard(testSpaces(), 4, c, rolls)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	ann, err := b.AddPlayer("Ann", false)
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	bob, err := b.AddPlayer("Bob", true)
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := b.RunTurn(); err != nil {
			t.Fatalf("RunTurn: %v", err)
		}
	}
	if err := c.Err(); err != nil {
		t.Fatalf("console ran out of input: %v", err)
	}
	if n := rolls.Remaining(); n != 0 {
		t.Errorf("%d rolls left over", n)
	}

	if !ann.Capital().Equal(monopoly.M(1642)) {
		t.Errorf("Ann has %s, want 1642", ann.Capital())
	}
	if !bob.Capital().Equal(monopoly.M(1838)) {
		t.Errorf("Bob has %s, want 1838", bob.Capital())
	}

	for _, line := range []string{
		"Starting turn: 1",
		"Starting turn: 2",
		"Player Ann moved by 6: landed on Old Kent Road!",
		"Player Ann passed go and collected £200",
		"Player Ann bought Old Kent Road for £60. Now has £1,640 and owns Old Kent Road",
		"Player Bob bought Whitechapel Road for £60",
		"Can't add a house!",
		"Player Ann moved by 3: landed on Jail!",
		"Player Bob gave Old Kent Road owner Player Ann £2!",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("output is missing %q", line)
		}
	}
	if t.Failed() {
		t.Logf("output:\n%s", out)
	}
}

func testSpaces() []monopoly.Space {
	return []monopoly.Space{
		nil,
		monopoly.NewProperty("Old Kent Road", monopoly.Brown, monopoly.M(60), monopoly.M(50), monopoly.M(30), monopoly.M(2), monopoly.M(10)),
		monopoly.NewProperty("Whitechapel Road", monopoly.Brown, monopoly.M(60), monopoly.M(50), monopoly.M(30), monopoly.M(4), monopoly.M(20)),
		monopoly.NewPlain("Rest"),
		monopoly.NewJail(),
	}
}

func TestPrintOutcome(t *testing.T) {
	c, out := newConsole("")
	c.PrintOutcome(&game.Outcome{
		Turns: 12,
		Standings: []*game.Standing{
			{Name: "Bob", Capital: monopoly.M(1720), Owned: 3},
			{Name: "Ann", Capital: monopoly.M(980), Owned: 1},
		},
	})

	got := out.String()
	for _, want := range []string{"Game over after 12 turns", "Bob", "£1,720", "£980"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Bob") > strings.Index(got, "Ann") {
		t.Errorf("Bob should be listed before Ann:\n%s", got)
	}
}
