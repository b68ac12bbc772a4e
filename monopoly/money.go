package monopoly

import "github.com/shopspring/decimal"

// Money is an amount of in-game currency. Capital is signed, but a charge is
// never allowed to take it below zero.
type Money = decimal.Decimal

// M returns a whole amount of currency.
func M(v int64) Money {
	return decimal.NewFromInt(v)
}

var (
	// StartingCapital is what every player starts the game with.
	StartingCapital = M(1500)
	// PassGoBonus is credited whenever a player's token wraps past the last
	// space back to the start.
	PassGoBonus = M(200)
	// JailFee is what a player pays to leave jail before rolling.
	JailFee = M(50)
	// StationCost and UtilityCost are the fixed purchase prices.
	StationCost = M(200)
	UtilityCost = M(150)
)
