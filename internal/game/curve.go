// internal/game/curve.go
//
// Round economics: the exponential expense curve that raises the cost of
// survival each round.

package game

import "math"

const (
	expenseBaseRate   = 0.8
	expenseGrowthRate = 0.2

	// sentinelRound stands in when the round count cannot safely feed the
	// curve's exponent.
	sentinelRound = 32
)

// Expenses computes the survival threshold for a round:
//
//	expenses(round) = base × (1 + growth)^round
//
// round is the number of cards played so far, counted after the current
// card is appended to history. Counts outside int32 range (or negative)
// fall back to the sentinel round instead of failing.
func Expenses(round int) Money {
	if round < 0 || round > math.MaxInt32 {
		round = sentinelRound
	}
	return Money(expenseBaseRate * math.Pow(1+expenseGrowthRate, float64(round)))
}
