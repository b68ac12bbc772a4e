// Package io plays Monopoly on a terminal.
package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TomBebb/Monopoly/game"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrNoInput = errors.New("io: ran out of input")

// Console is a monopoly.Presenter that writes events out as text and asks the
// user to make decisions for human players.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	// err is the first input error. The Decider methods can't return one, so
	// once input runs out they decline everything and the caller checks Err.
	err error
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Err returns the error that stopped the console reading input, if any.
func (c *Console) Err() error { return c.err }

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if !c.in.Scan() {
		c.err = ErrNoInput
		if err := c.in.Err(); err != nil {
			c.err = fmt.Errorf("scanner error: %w", err)
		}
		return "", c.err
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// PromptBool asks a yes or no question until it gets an answer.
func (c *Console) PromptBool(prompt string) (bool, error) {
	for {
		c.printf("%s (y / n): ", prompt)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch {
		case strings.HasPrefix(strings.ToLower(line), "y"):
			return true, nil
		case strings.HasPrefix(strings.ToLower(line), "n"):
			return false, nil
		}
		c.printf("Expected y or n\n")
	}
}

// PromptInt asks for a whole number in [min, max] until it gets one.
func (c *Console) PromptInt(prompt string, min, max int) (int, error) {
	for {
		c.printf("%s: ", prompt)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		c.printf("Expected a number from %d to %d\n", min, max)
	}
}

// PromptString asks for a non-empty line.
func (c *Console) PromptString(prompt string) (string, error) {
	for {
		c.printf("%s: ", prompt)
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		c.printf("Expected some text\n")
	}
}

// PromptChoice lists the options, numbered from 1, and returns the index of
// the one picked.
func (c *Console) PromptChoice(prompt string, options []string) (int, error) {
	c.printf("%s:\n", prompt)
	for i, opt := range options {
		c.printf("%d: %s\n", i+1, opt)
	}
	n, err := c.PromptInt("Please select an index", 1, len(options))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Pause waits for the user to press enter.
func (c *Console) Pause() error {
	c.printf("Press enter to play the next turn")
	_, err := c.readLine()
	return err
}

// PromptPlayers asks who's playing.
func (c *Console) PromptPlayers(min, max int) ([]game.PlayerSpec, error) {
	n, err := c.PromptInt("Enter number of players to create", min, max)
	if err != nil {
		return nil, err
	}

	var specs []game.PlayerSpec
	taken := make(map[string]bool)
	for i := 1; i <= n; i++ {
		name, err := c.PromptString(fmt.Sprintf("Enter name for player %d", i))
		if err != nil {
			return nil, err
		}
		for taken[name] {
			c.printf("%q is already playing\n", name)
			if name, err = c.PromptString(fmt.Sprintf("Enter name for player %d", i)); err != nil {
				return nil, err
			}
		}
		taken[name] = true

		auto, err := c.PromptBool("CPU control this player?")
		if err != nil {
			return nil, err
		}
		specs = append(specs, game.PlayerSpec{Name: name, Automated: auto})
	}
	return specs, nil
}

var pounds = message.NewPrinter(language.BritishEnglish)

func money(m monopoly.Money) string {
	if m.IsInteger() {
		return pounds.Sprintf("£%d", m.IntPart())
	}
	return "£" + m.StringFixed(2)
}

func (c *Console) PlayerLanded(p *monopoly.Player, s monopoly.Space) {
	c.printf("%s moved by %d: landed on %s!\n", p, p.LastMoved(), s.Name())
}

func (c *Console) PlayerPaidRent(p, owner *monopoly.Player, s monopoly.Space, amount monopoly.Money) {
	c.printf("%s gave %s owner %s %s!\n", p, s.Name(), owner, money(amount))
}

func (c *Console) PlayerBought(p *monopoly.Player, s monopoly.Space, cost monopoly.Money) {
	var names []string
	for _, o := range p.Owned() {
		names = append(names, o.Name())
	}
	c.printf("%s bought %s for %s. Now has %s and owns %s\n", p, s.Name(), money(cost), money(p.Capital()), strings.Join(names, ", "))
}

func (c *Console) PlayerTaxed(p *monopoly.Player, t *monopoly.Tax) {
	c.printf("%s charged %s at %s\n", p, money(t.Amount), t.Name())
}

func (c *Console) PlayerSentToJail(p *monopoly.Player) {
	c.printf("%s sent to jail\n", p)
}

func (c *Console) PlayerFreedFromJail(p *monopoly.Player, cause monopoly.EscapeJailCause) {
	switch cause {
	case monopoly.CauseDoubles:
		c.printf("%s rolled doubles to get out of jail\n", p)
	case monopoly.CauseJailCard:
		c.printf("%s used a 'Get Out of Jail Free' card\n", p)
	case monopoly.CausePaid:
		c.printf("%s paid %s to get out of jail\n", p, money(monopoly.JailFee))
	}
}

func (c *Console) PlayerStillInJail(p *monopoly.Player) {
	c.printf("%s is still in jail!\n", p)
}

func (c *Console) PlayerRolled(p *monopoly.Player, die1, die2 int, doubles bool) {
	if doubles {
		c.printf("%s rolled %d and %d. Doubles!\n", p, die1, die2)
		return
	}
	c.printf("%s rolled %d and %d\n", p, die1, die2)
}

func (c *Console) PlayerCapitalChanged(p *monopoly.Player) {
	c.printf("%s now has %s\n", p, money(p.Capital()))
}

func (c *Console) PlayerPickedCard(p *monopoly.Player, card monopoly.Card) {
	c.printf("%s picked a card: %s\n", p, card)
}

func (c *Console) PlayerAddedHouse(owner *monopoly.Player, prop *monopoly.Property, hotel bool) {
	if hotel {
		c.printf("%s built a hotel on %s\n", owner, prop.Name())
		return
	}
	c.printf("%s built a house on %s, which now has %d\n", owner, prop.Name(), prop.Houses())
}

func (c *Console) PlayerPassedGo(p *monopoly.Player) {
	c.printf("%s passed go and collected %s\n", p, money(monopoly.PassGoBonus))
}

// BeforeTurn shows where everyone stands, then lets each human player build
// on their properties.
func (c *Console) BeforeTurn(b *monopoly.Board) {
	c.printf("Starting turn: %d\n", b.Turn())
	c.printStandings(b)

	for _, p := range b.Players() {
		if p.Automated() || len(p.Owned()) == 0 {
			continue
		}
		for c.err == nil {
			act, err := c.PromptBool(fmt.Sprintf("Does %s want to do an action on any owned property?", p))
			if err != nil || !act {
				break
			}
			c.propertyActions(b, p)
		}
	}
}

func (c *Console) propertyActions(b *monopoly.Board, p *monopoly.Player) {
	owned := p.Owned()
	var names []string
	for _, s := range owned {
		names = append(names, s.Name())
	}
	i, err := c.PromptChoice("Pick a property to do an action on", names)
	if err != nil {
		return
	}

	prop, ok := owned[i].(*monopoly.Property)
	if !ok {
		c.printf("Nothing can be done with %s\n", owned[i].Name())
		return
	}
	action, err := c.PromptChoice(fmt.Sprintf("Enter action for %s", prop.Name()), []string{
		"None",
		fmt.Sprintf("Buy a house (%s)", money(prop.HouseCost)),
	})
	if err != nil || action == 0 {
		return
	}
	if !b.AddHouse(prop) {
		c.printf("Can't add a house!\n")
	}
}

func (c *Console) printStandings(b *monopoly.Board) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Player", "Capital", "Position", "Jail", "Owns"})

	for _, p := range b.Players() {
		pos := "Go"
		if s := b.Space(p.Position()); s != nil {
			pos = s.Name()
		}
		jail := ""
		if p.InJail() {
			jail = "in jail"
		}
		if n := p.JailCards(); n > 0 {
			jail = strings.TrimSpace(fmt.Sprintf("%s %d card(s)", jail, n))
		}

		var owns []string
		for _, s := range p.Owned() {
			name := s.Name()
			if prop, ok := s.(*monopoly.Property); ok && prop.Houses() > 0 {
				name = fmt.Sprintf("%s [%d]", name, prop.Houses())
			}
			owns = append(owns, name)
		}

		row := []string{p.Name(), money(p.Capital()), pos, jail, strings.Join(owns, ", ")}
		var colors []tablewriter.Colors
		if p.InJail() {
			colors = []tablewriter.Colors{{tablewriter.FgHiRedColor}}
		}
		table.Rich(row, colors)
	}

	table.Render()
}

func (c *Console) ShouldBuy(p *monopoly.Player, s monopoly.Space, cost monopoly.Money) bool {
	ok, _ := c.PromptBool(fmt.Sprintf("Does %s (%s) want to buy %s for %s?", p, money(p.Capital()), s.Name(), money(cost)))
	return ok
}

func (c *Console) ShouldPayOutOfJail(p *monopoly.Player) bool {
	ok, _ := c.PromptBool(fmt.Sprintf("Will %s pay %s to get out of jail?", p, money(monopoly.JailFee)))
	return ok
}

func (c *Console) ShouldUseJailCard(p *monopoly.Player) bool {
	ok, _ := c.PromptBool(fmt.Sprintf("Will %s use their Get Out of Jail Free card?", p))
	return ok
}

// PrintOutcome shows the final standings.
func (c *Console) PrintOutcome(o *game.Outcome) {
	c.printf("Game over after %d turns\n", o.Turns)

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"", "Player", "Capital", "Spaces"})
	for i, s := range o.Standings {
		table.Append([]string{strconv.Itoa(i + 1), s.Name, money(s.Capital), strconv.Itoa(s.Owned)})
	}
	table.Render()
}
