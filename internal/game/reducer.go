// internal/game/reducer.go
//
// The state transition function. All game rules live here.
// Responsibilities:
//   - Action variants: money/emission adjustments, draws, card plays.
//   - Apply: pure mapping (state, action) → next state.
//   - Ordered loss/win evaluation after each played card.
//
// Notes:
//   - No I/O, no hidden state, no panics for control flow: every outcome
//     is expressed in the returned state.
//   - The reducer never refuses a transition after game over; checking the
//     status between transitions is the driver's contract.
//   - The only injected capability is the shuffle used by DrawCards.

package game

// Action is a request to transition the game state. The variant set is
// closed; each variant documents its contract on Apply.
type Action interface {
	isAction()
}

// GainMoney adds Amount to capital. Amount may be negative (a cost).
type GainMoney struct{ Amount Money }

// SetExactAmount overrides capital directly, bypassing arithmetic.
type SetExactAmount struct{ Amount Money }

// IncreaseCo2Emission adds Delta to the accumulated emission. A delta that
// would take the emission below zero makes the whole action a no-op.
type IncreaseCo2Emission struct{ Delta Emission }

// SetExactCo2Emission overrides the accumulated emission. No clamping —
// explicit overrides are trusted.
type SetExactCo2Emission struct{ Amount Emission }

// DrawCards replaces the hand with Count cards drawn from the deck.
type DrawCards struct{ Count int }

// PlayCard resolves one round: applies the card's deltas, appends it to
// history, recomputes expenses, and evaluates the loss/win policy.
type PlayCard struct{ Card Card }

func (GainMoney) isAction()           {}
func (SetExactAmount) isAction()      {}
func (IncreaseCo2Emission) isAction() {}
func (SetExactCo2Emission) isAction() {}
func (DrawCards) isAction()           {}
func (PlayCard) isAction()            {}

// Reducer applies actions to states. Apart from the injected shuffle it is
// a pure, total, terminating function of its two inputs.
type Reducer struct {
	shuffle ShuffleFunc
}

// NewReducer constructs a reducer. A nil shuffle uses RandomShuffle.
func NewReducer(shuffle ShuffleFunc) *Reducer {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	return &Reducer{shuffle: shuffle}
}

// Apply maps (state, action) to the next state. Unknown actions leave the
// state unchanged.
func (r *Reducer) Apply(s State, a Action) State {
	switch act := a.(type) {
	case GainMoney:
		s.Finance.Capital = s.Finance.Capital.Add(act.Amount)
	case SetExactAmount:
		s.Finance.Capital = act.Amount
	case IncreaseCo2Emission:
		next := s.Emission.Add(act.Delta)
		if next < 0 {
			// Would cross the zero floor: the entire action is a no-op,
			// not a clamp.
			return s
		}
		s.Emission = next
	case SetExactCo2Emission:
		s.Emission = act.Amount
	case DrawCards:
		s.Hand = s.Deck.Draw(act.Count, r.shuffle)
	case PlayCard:
		return playCard(s, act.Card)
	}
	return s
}

// playCard is the composite round transition, applied atomically.
//
// Loss/win evaluation runs in fixed priority order; the first match wins:
//  1. capital below the bankruptcy threshold     → game over
//  2. capital below the new expense bar          → game over
//  3. emission above the pollution threshold     → game over
//  4. round count past RoundsToBeat              → beaten
//  5. otherwise the status is carried unchanged (a beaten game may
//     continue past victory).
func playCard(s State, card Card) State {
	s.Finance.Capital = s.Finance.Capital.Add(card.DeltaProfit)

	emission := s.Emission.Add(card.DeltaCO2)
	if emission < 0 {
		emission = 0
	}
	s.Emission = emission

	// Copy-on-append keeps the previous state's history intact.
	played := make([]Card, len(s.Played), len(s.Played)+1)
	copy(played, s.Played)
	s.Played = append(played, card)

	round := len(s.Played)
	s.Finance.Expenses = Expenses(round)

	switch {
	case s.Finance.Capital < BankruptcyThreshold:
		s.Status = StatusGameOver
	case s.Finance.Capital < s.Finance.Expenses:
		s.Status = StatusGameOver
	case s.Emission > CatastrophicPollutionThreshold:
		s.Status = StatusGameOver
	case round > RoundsToBeat:
		s.Status = StatusBeaten
	}
	return s
}
