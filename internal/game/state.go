// internal/game/state.go
//
// The aggregate game state: finance, accumulated emission, deck, hand,
// play history, and playthrough status.
//
// State is a value. Every transition produces a new State; the engine never
// mutates one in place (the reducer copies the history slice before
// appending). Drivers thread the value through their loop explicitly —
// there is no process-wide game state.

package game

import "fmt"

// State is the aggregate root for one playthrough.
type State struct {
	Finance  Finance  // Capital and the rolling expense threshold.
	Emission Emission // Accumulated CO₂e; never negative.
	Deck     Deck     // Full pool, loaded once at game start.
	Hand     Hand     // Current round's drawn cards.
	Played   []Card   // Append-only play history, first-played first.
	Status   Status   // ongoing / game_over / beaten.
}

// New returns the default starting state over the given deck: starting
// capital, zero expenses and emission, empty history, status ongoing.
func New(deck Deck) State {
	return State{
		Finance: DefaultFinance(),
		Deck:    deck,
		Status:  StatusOngoing,
	}
}

// Round is the number of completed rounds, which equals the number of
// cards played so far.
func (s State) Round() int { return len(s.Played) }

// Summary is the displayable snapshot handed to drivers. The engine does
// not format for any particular terminal; quantity strings carry their own
// units.
type Summary struct {
	Capital      string `json:"capital"`
	Expenses     string `json:"expenses"`
	Emission     string `json:"emission"`
	EmissionCap  string `json:"emissionCap"`
	Round        int    `json:"round"`
	RoundsToBeat int    `json:"roundsToBeat"`
	Status       Status `json:"status"`
}

// Summary builds the displayable snapshot for the current instant.
func (s State) Summary() Summary {
	return Summary{
		Capital:      s.Finance.Capital.String(),
		Expenses:     s.Finance.Expenses.String(),
		Emission:     s.Emission.String(),
		EmissionCap:  CatastrophicPollutionThreshold.String(),
		Round:        s.Round(),
		RoundsToBeat: RoundsToBeat,
		Status:       s.Status,
	}
}

// String renders the state for a terminal driver.
func (s State) String() string {
	return fmt.Sprintf("Capital/Expenses: %s\nEmissions: %s / %s\nRound: %d/%d",
		s.Finance, s.Emission, CatastrophicPollutionThreshold, s.Round(), RoundsToBeat)
}
