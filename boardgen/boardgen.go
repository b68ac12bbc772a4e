// Package boardgen describes board layouts as data, and turns them into the
// spaces a monopoly.Board is built from.
package boardgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TomBebb/Monopoly/monopoly"
)

var ErrBadLayout = errors.New("boardgen: bad layout")

// Layout is a whole board, in the order players travel around it.
type Layout struct {
	// Jail is the index of the jail cell in Spaces.
	Jail   int        `json:"jail"`
	Spaces []SpaceDef `json:"spaces"`
}

// SpaceDef is one square. Which fields matter depends on Kind. Prices are
// whole pounds.
type SpaceDef struct {
	Kind monopoly.SpaceKind `json:"kind"`
	Name string             `json:"name,omitempty"`

	// Properties.
	Family    monopoly.Family `json:"family,omitempty"`
	Cost      int64           `json:"cost,omitempty"`
	HouseCost int64           `json:"house_cost,omitempty"`
	Mortgage  int64           `json:"mortgage,omitempty"`
	Rents     []int64         `json:"rents,omitempty"`

	// Taxes.
	Amount int64 `json:"amount,omitempty"`
}

// Load reads a JSON layout.
func Load(r io.Reader) (*Layout, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	return &l, nil
}

func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Build creates fresh spaces for the layout. Every call returns new spaces,
// so one layout can back any number of games.
func Build(l *Layout) ([]monopoly.Space, error) {
	if len(l.Spaces) == 0 {
		return nil, fmt.Errorf("%w: no spaces", ErrBadLayout)
	}

	spaces := make([]monopoly.Space, len(l.Spaces))
	for i, d := range l.Spaces {
		s, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("%w: space %d: %v", ErrBadLayout, i, err)
		}
		spaces[i] = s
	}
	return spaces, nil
}

// NewBoard builds the layout into a board with no players yet.
func NewBoard(l *Layout, pr monopoly.Presenter, rnd monopoly.RandomSource) (*monopoly.Board, error) {
	spaces, err := Build(l)
	if err != nil {
		return nil, err
	}
	return monopoly.NewBoard(spaces, l.Jail, pr, rnd)
}

// Validate reports whether the layout would make a playable board.
func Validate(l *Layout) error {
	spaces, err := Build(l)
	if err != nil {
		return err
	}
	return monopoly.Validate(spaces, l.Jail)
}

func (d SpaceDef) build() (monopoly.Space, error) {
	needName := func() error {
		if d.Name == "" {
			return fmt.Errorf("%s has no name", d.Kind)
		}
		return nil
	}

	switch d.Kind {
	case monopoly.KindGo:
		return nil, nil
	case monopoly.KindPlain:
		if err := needName(); err != nil {
			return nil, err
		}
		return monopoly.NewPlain(d.Name), nil
	case monopoly.KindProperty:
		if err := needName(); err != nil {
			return nil, err
		}
		rents := make([]monopoly.Money, len(d.Rents))
		for i, r := range d.Rents {
			rents[i] = monopoly.M(r)
		}
		return monopoly.NewProperty(d.Name, d.Family, monopoly.M(d.Cost), monopoly.M(d.HouseCost), monopoly.M(d.Mortgage), rents...), nil
	case monopoly.KindStation:
		if err := needName(); err != nil {
			return nil, err
		}
		return monopoly.NewStation(d.Name), nil
	case monopoly.KindUtility:
		if err := needName(); err != nil {
			return nil, err
		}
		return monopoly.NewUtility(d.Name), nil
	case monopoly.KindTax:
		if err := needName(); err != nil {
			return nil, err
		}
		return monopoly.NewTax(d.Name, monopoly.M(d.Amount)), nil
	case monopoly.KindJail:
		return monopoly.NewJail(), nil
	case monopoly.KindGoToJail:
		return monopoly.NewGoToJail(), nil
	case monopoly.KindChance:
		return monopoly.NewChance(), nil
	case monopoly.KindCommunityChest:
		return monopoly.NewCommunityChest(), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}
}

func property(name string, f monopoly.Family, cost, houseCost, mortgage int64, rents ...int64) SpaceDef {
	return SpaceDef{
		Kind:      monopoly.KindProperty,
		Name:      name,
		Family:    f,
		Cost:      cost,
		HouseCost: houseCost,
		Mortgage:  mortgage,
		Rents:     rents,
	}
}

func kind(k monopoly.SpaceKind) SpaceDef { return SpaceDef{Kind: k} }

func named(k monopoly.SpaceKind, name string) SpaceDef { return SpaceDef{Kind: k, Name: name} }

// Standard returns the London board.
func Standard() *Layout {
	return &Layout{
		Jail: 10,
		Spaces: []SpaceDef{
			kind(monopoly.KindGo),
			property("Old Kent Road", monopoly.Brown, 60, 50, 30, 2, 10, 30, 90, 160, 250),
			kind(monopoly.KindCommunityChest),
			property("Whitechapel Road", monopoly.Brown, 60, 50, 30, 4, 20, 60, 180, 360, 450),
			{Kind: monopoly.KindTax, Name: "Income Tax", Amount: 200},
			named(monopoly.KindStation, "Kings Cross Station"),
			property("The Angel Islington", monopoly.LightBlue, 100, 50, 50, 6, 30, 90, 270, 400, 550),
			kind(monopoly.KindChance),
			property("Euston Road", monopoly.LightBlue, 100, 50, 50, 6, 30, 90, 270, 400, 550),
			property("Pentonville Road", monopoly.LightBlue, 120, 50, 60, 8, 40, 100, 300, 450, 600),

			kind(monopoly.KindJail),
			property("Pall Mall", monopoly.Pink, 140, 100, 70, 10, 50, 150, 450, 625, 750),
			named(monopoly.KindUtility, "Electric Company"),
			property("Whitehall", monopoly.Pink, 140, 100, 70, 10, 50, 150, 450, 625, 750),
			property("Northumberland Avenue", monopoly.Pink, 160, 100, 80, 12, 60, 180, 500, 700, 900),
			named(monopoly.KindStation, "Marylebone Station"),
			property("Bow Street", monopoly.Orange, 180, 100, 90, 14, 70, 200, 550, 750, 950),
			kind(monopoly.KindCommunityChest),
			property("Marlborough Street", monopoly.Orange, 180, 100, 90, 14, 70, 200, 550, 750, 950),
			property("Vine Street", monopoly.Orange, 200, 100, 100, 16, 80, 220, 600, 800, 1000),

			named(monopoly.KindPlain, "Free Parking"),
			property("Strand", monopoly.Red, 220, 150, 110, 18, 90, 250, 700, 875, 1050),
			kind(monopoly.KindChance),
			property("Fleet Street", monopoly.Red, 220, 150, 110, 18, 90, 250, 700, 875, 1050),
			property("Trafalgar Square", monopoly.Red, 240, 150, 120, 20, 100, 300, 750, 925, 1100),
			named(monopoly.KindStation, "Fenchurch St Station"),
			property("Leicester Square", monopoly.Yellow, 260, 150, 130, 22, 110, 330, 800, 975, 1150),
			property("Coventry Street", monopoly.Yellow, 260, 150, 130, 22, 110, 330, 800, 975, 1150),
			named(monopoly.KindUtility, "Water Works"),
			property("Piccadilly", monopoly.Yellow, 280, 150, 140, 24, 120, 360, 850, 1025, 1200),

			kind(monopoly.KindGoToJail),
			property("Regent Street", monopoly.Green, 300, 200, 150, 26, 130, 390, 900, 1100, 1275),
			property("Oxford Street", monopoly.Green, 300, 200, 150, 26, 130, 390, 900, 1100, 1275),
			kind(monopoly.KindCommunityChest),
			property("Bond Street", monopoly.Green, 320, 200, 160, 28, 150, 450, 1000, 1200, 1400),
			named(monopoly.KindStation, "Liverpool St Station"),
			kind(monopoly.KindChance),
			property("Park Lane", monopoly.DarkBlue, 350, 200, 175, 35, 175, 500, 1100, 1300, 1500),
			{Kind: monopoly.KindTax, Name: "Super Tax", Amount: 100},
			property("Mayfair", monopoly.DarkBlue, 400, 200, 200, 50, 200, 600, 1400, 1700, 2000),
		},
	}
}
