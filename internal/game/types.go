// internal/game/types.go
//
// Core type definitions for the carbonclash game engine.
// Defines:
//   - Money: signed monetary quantity with two-decimal display.
//   - Emission: cumulative CO₂-equivalent quantity.
//   - Card: immutable card value (title + profit/emission deltas).
//   - Finance: capital and the rolling expense threshold.
//   - Status: coarse playthrough outcome (ongoing/game_over/beaten).

package game

import "fmt"

// Money is a signed monetary amount in the game's currency.
type Money float64

// Add returns m + other.
func (m Money) Add(other Money) Money { return m + other }

// Sub returns m - other.
func (m Money) Sub(other Money) Money { return m - other }

// String renders with two decimal places and the currency glyph, e.g. "5.00¢".
func (m Money) String() string { return fmt.Sprintf("%.2f¢", float64(m)) }

// Emission is a cumulative amount of CO₂-equivalent.
type Emission float64

// Add returns e + other.
func (e Emission) Add(other Emission) Emission { return e + other }

// String renders with the unit suffix, e.g. "5 tCO₂e".
func (e Emission) String() string { return fmt.Sprintf("%g tCO₂e", float64(e)) }

// Gameplay constants. Tunable in principle; these are the reference policy.
const (
	StartingCapital     Money = 5.0
	BankruptcyThreshold Money = 0.0

	// CatastrophicPollutionThreshold is the emission ceiling whose breach
	// ends the game.
	CatastrophicPollutionThreshold Emission = 20.0

	// RoundsToBeat is the number of rounds a player must survive to win.
	RoundsToBeat = 32

	// DefaultHandSize is how many cards a round offers the player.
	DefaultHandSize = 3
)

// Card is an immutable card value. Cards are data; they are never mutated
// after creation.
type Card struct {
	Title       string   // Display name.
	HelpText    string   // Optional flavor/help line shown with the card.
	DeltaProfit Money    // Applied to capital when played.
	DeltaCO2    Emission // Applied to accumulated emission when played.
}

// EmptyCard is the fallback card used when no valid card can be resolved.
var EmptyCard = Card{Title: "Nothing"}

// String renders a card with its deltas, e.g. "Install solar panels (-2.00¢, -3 tCO₂e)".
func (c Card) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Title, c.DeltaProfit, c.DeltaCO2)
}

// Finance holds the player's balance and the survival threshold the balance
// must stay at or above after each round.
type Finance struct {
	Capital  Money // Current balance.
	Expenses Money // Recomputed from the round count every round.
}

// DefaultFinance is the starting finance state: fixed starting balance,
// zero expenses.
func DefaultFinance() Finance {
	return Finance{Capital: StartingCapital, Expenses: 0}
}

// String renders as "capital/expenses", e.g. "5.00¢/0.80¢".
func (f Finance) String() string {
	return fmt.Sprintf("%s/%s", f.Capital, f.Expenses)
}

// Status is the three-valued playthrough outcome flag.
// Possible values:
//   - "ongoing":   the playthrough continues.
//   - "game_over": a loss condition fired; drivers must stop playing cards.
//   - "beaten":    the player survived past RoundsToBeat (play may go on).
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusGameOver        = "game_over"
	StatusBeaten          = "beaten"
)
