package monopoly

// Space is a single square on the board. The set of spaces is closed: the only
// implementations are the types in this file, and Board.land handles each of
// them.
type Space interface {
	Name() string
	space()
}

// SpaceKind identifies the variant of a Space.
type SpaceKind string

const (
	KindGo             = SpaceKind("go")
	KindPlain          = SpaceKind("plain")
	KindProperty       = SpaceKind("property")
	KindStation        = SpaceKind("station")
	KindUtility        = SpaceKind("utility")
	KindTax            = SpaceKind("tax")
	KindJail           = SpaceKind("jail")
	KindGoToJail       = SpaceKind("go_to_jail")
	KindChance         = SpaceKind("chance")
	KindCommunityChest = SpaceKind("community_chest")
)

// KindOf returns the kind of the given space. An absent space is the Go
// square.
func KindOf(s Space) SpaceKind {
	switch s.(type) {
	case nil:
		return KindGo
	case *Plain:
		return KindPlain
	case *Property:
		return KindProperty
	case *Station:
		return KindStation
	case *Utility:
		return KindUtility
	case *Tax:
		return KindTax
	case *Jail:
		return KindJail
	case *GoToJail:
		return KindGoToJail
	case *Chance:
		return KindChance
	case *CommunityChest:
		return KindCommunityChest
	}
	return ""
}

type base struct {
	name string
}

func (b *base) Name() string   { return b.name }
func (b *base) String() string { return b.name }
func (*base) space()           {}

// ownable is embedded by every space a player can buy. owner is a
// back-reference only; the player's owned list is authoritative, and both are
// updated together by Board.acquire.
type ownable struct {
	owner *Player
}

// Owner returns the player holding the space, or nil.
func (o *ownable) Owner() *Player { return o.owner }

// Plain is a space with no effect beyond the landing notification, like Free
// Parking.
type Plain struct{ base }

func NewPlain(name string) *Plain {
	return &Plain{base{name}}
}

// CommunityChest is a placeholder; community chest cards aren't drawn.
type CommunityChest struct{ base }

func NewCommunityChest() *CommunityChest {
	return &CommunityChest{base{"Community Chest"}}
}

// Chance draws a card from ChanceCards and applies it.
type Chance struct{ base }

func NewChance() *Chance {
	return &Chance{base{"Chance"}}
}

// Jail is the jail cell. Landing on it normally means "just visiting".
type Jail struct{ base }

func NewJail() *Jail {
	return &Jail{base{"Jail"}}
}

// GoToJail sends whoever lands on it to the jail cell.
type GoToJail struct{ base }

func NewGoToJail() *GoToJail {
	return &GoToJail{base{"Go to Jail"}}
}

// Tax charges a fixed amount.
type Tax struct {
	base
	Amount Money
}

func NewTax(name string, amount Money) *Tax {
	return &Tax{base: base{name}, Amount: amount}
}

// Family is the color group of a Property.
type Family string

const (
	Brown     = Family("brown")
	LightBlue = Family("light_blue")
	Pink      = Family("pink")
	Orange    = Family("orange")
	Red       = Family("red")
	Yellow    = Family("yellow")
	Green     = Family("green")
	DarkBlue  = Family("dark_blue")
)

// Property is a street. Its rent depends on how many houses are built on it.
type Property struct {
	base
	ownable

	Family    Family
	Cost      Money
	HouseCost Money
	// MortgageValue is kept for display; mortgaging isn't part of the game.
	MortgageValue Money
	// Rents is indexed by house count. The last entry is the hotel.
	Rents []Money

	houses int
}

func NewProperty(name string, family Family, cost, houseCost, mortgage Money, rents ...Money) *Property {
	return &Property{
		base:          base{name},
		Family:        family,
		Cost:          cost,
		HouseCost:     houseCost,
		MortgageValue: mortgage,
		Rents:         rents,
	}
}

// Houses is the number of houses built, where len(Rents)-1 is a hotel.
func (p *Property) Houses() int { return p.houses }

// Rent is what a visitor pays at the current house count.
func (p *Property) Rent() Money {
	return p.Rents[p.houses]
}

// HasHotel reports whether the property is at its final rent tier.
func (p *Property) HasHotel() bool {
	return p.houses == len(p.Rents)-1
}

// CanAddHouse reports whether the owner may buy another house here: they can
// afford it, the property isn't already at its final tier, and they own the
// whole family.
func (p *Property) CanAddHouse() bool {
	if p.owner == nil {
		return false
	}
	return p.owner.capital.GreaterThanOrEqual(p.HouseCost) &&
		p.houses+1 < len(p.Rents) &&
		p.owner.HasAll(p.Family)
}

// Station rent depends on how many stations the owner holds.
type Station struct {
	base
	ownable

	Cost Money
}

func NewStation(name string) *Station {
	return &Station{base: base{name}, Cost: StationCost}
}

// Rent is 25, 50, 100 or 200 for an owner holding 1, 2, 3 or 4 stations.
func (s *Station) Rent() Money {
	if s.owner == nil {
		return Money{}
	}
	switch s.owner.Stations() {
	case 1:
		return M(25)
	case 2:
		return M(50)
	case 3:
		return M(100)
	default:
		return M(200)
	}
}

// Utility rent is a multiple of the visitor's dice roll.
type Utility struct {
	base
	ownable

	Cost Money
}

func NewUtility(name string) *Utility {
	return &Utility{base: base{name}, Cost: UtilityCost}
}

// Rent is 4 times the roll when the owner holds one utility, 10 times
// otherwise.
func (u *Utility) Rent(roll int) Money {
	if u.owner == nil {
		return Money{}
	}
	if u.owner.Utilities() == 1 {
		return M(int64(roll * 4))
	}
	return M(int64(roll * 10))
}
