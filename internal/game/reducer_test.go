package game_test

import (
	"math"
	"testing"

	"github.com/carbonclash/go-server/internal/game"
)

// identityShuffle leaves order untouched so draws are deterministic.
func identityShuffle(n int, swap func(i, j int)) {}

func testDeck() game.Deck {
	return game.Deck{
		{Title: "Open a coal plant", DeltaProfit: 6, DeltaCO2: 8},
		{Title: "Install solar panels", DeltaProfit: -2, DeltaCO2: -3},
		{Title: "Plant a forest", DeltaProfit: -1, DeltaCO2: -4},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGainMoney(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	s = r.Apply(s, game.GainMoney{Amount: 1})
	if want := game.StartingCapital + 1; s.Finance.Capital != want {
		t.Fatalf("capital = %v, want %v", s.Finance.Capital, want)
	}
}

func TestGainNegativeMoney(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	s = r.Apply(s, game.GainMoney{Amount: -1})
	if want := game.StartingCapital - 1; s.Finance.Capital != want {
		t.Fatalf("capital = %v, want %v", s.Finance.Capital, want)
	}
}

func TestSetExactAmountIsIdempotent(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	for _, start := range []game.Money{-10, 0, 5, 1e6} {
		s := game.New(nil)
		s = r.Apply(s, game.SetExactAmount{Amount: start})
		s = r.Apply(s, game.SetExactAmount{Amount: 1337})
		if s.Finance.Capital != 1337 {
			t.Fatalf("capital = %v, want 1337 (start %v)", s.Finance.Capital, start)
		}
	}
}

func TestIncreaseCo2Emission(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	s = r.Apply(s, game.IncreaseCo2Emission{Delta: 1})
	if s.Emission != 1 {
		t.Fatalf("emission = %v, want 1", s.Emission)
	}
	s = r.Apply(s, game.IncreaseCo2Emission{Delta: 2.5})
	if s.Emission != 3.5 {
		t.Fatalf("emission = %v, want 3.5", s.Emission)
	}
}

func TestIncreaseCo2EmissionBelowZeroIsNoOp(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	s = r.Apply(s, game.IncreaseCo2Emission{Delta: 3})

	// A delta that would take the total negative leaves the state as-is,
	// it does not clamp.
	next := r.Apply(s, game.IncreaseCo2Emission{Delta: -5})
	if next.Emission != 3 {
		t.Fatalf("emission = %v, want 3 (no-op)", next.Emission)
	}
}

func TestSetExactCo2EmissionTrustsOverrides(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	s = r.Apply(s, game.SetExactCo2Emission{Amount: -4})
	if s.Emission != -4 {
		t.Fatalf("emission = %v, want -4 (no clamping on overrides)", s.Emission)
	}
}

func TestDrawCardsReplacesHand(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(testDeck())

	s = r.Apply(s, game.DrawCards{Count: 2})
	if len(s.Hand) != 2 {
		t.Fatalf("hand size = %d, want 2", len(s.Hand))
	}
	if len(s.Deck) != 3 {
		t.Fatalf("deck size = %d after draw, want 3 (non-destructive)", len(s.Deck))
	}
}

func TestPlayCardUpdatesProfitAndEmission(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	card := game.Card{Title: "A card", DeltaProfit: -5, DeltaCO2: 5}

	s = r.Apply(s, game.PlayCard{Card: card})
	if want := game.StartingCapital - 5; s.Finance.Capital != want {
		t.Fatalf("capital = %v, want %v", s.Finance.Capital, want)
	}
	if s.Emission != 5 {
		t.Fatalf("emission = %v, want 5", s.Emission)
	}
	if len(s.Played) != 1 || s.Played[0].Title != "A card" {
		t.Fatalf("played = %v, want the one card", s.Played)
	}
}

func TestPlayCardClampsEmissionAtZero(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	s = r.Apply(s, game.SetExactCo2Emission{Amount: 1})

	s = r.Apply(s, game.PlayCard{Card: game.Card{Title: "Scrub the air", DeltaProfit: 100, DeltaCO2: -5}})
	if s.Emission != 0 {
		t.Fatalf("emission = %v, want 0 (clamped inside PlayCard)", s.Emission)
	}
}

func TestPlayCardAppendsHistoryInOrder(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	first := game.Card{Title: "Bribe authorities", DeltaProfit: 100, DeltaCO2: 5}
	second := game.Card{Title: "Win machinery", DeltaProfit: 100, DeltaCO2: -2}

	s = r.Apply(s, game.PlayCard{Card: first})
	s = r.Apply(s, game.PlayCard{Card: second})

	if len(s.Played) != 2 {
		t.Fatalf("history length = %d, want 2", len(s.Played))
	}
	if s.Played[0].Title != "Bribe authorities" || s.Played[1].Title != "Win machinery" {
		t.Fatalf("history order = [%s, %s], want first-played first",
			s.Played[0].Title, s.Played[1].Title)
	}
}

func TestPlayCardDoesNotMutatePriorState(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	s = r.Apply(s, game.PlayCard{Card: game.Card{Title: "one", DeltaProfit: 100}})

	_ = r.Apply(s, game.PlayCard{Card: game.Card{Title: "two", DeltaProfit: 100}})
	if len(s.Played) != 1 {
		t.Fatalf("prior state history length = %d after a later play, want 1", len(s.Played))
	}
}

func TestPlayCardRecomputesExpenses(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: 100}})
	if want := game.Expenses(1); !almostEqual(float64(s.Finance.Expenses), float64(want)) {
		t.Fatalf("expenses = %v, want %v", s.Finance.Expenses, want)
	}
}

func TestBankruptcyFiresFirst(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	s = r.Apply(s, game.SetExactAmount{Amount: 0})

	s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: -1}})
	if s.Status != game.StatusGameOver {
		t.Fatalf("status = %s, want game_over (bankruptcy)", s.Status)
	}
}

func TestExpenseShortfallEndsTheGame(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	s = r.Apply(s, game.SetExactAmount{Amount: 0})

	// Zero-delta card: capital stays 0, the recomputed expense bar does not.
	s = r.Apply(s, game.PlayCard{Card: game.Card{Title: "Do nothing"}})
	if s.Status != game.StatusGameOver {
		t.Fatalf("status = %s, want game_over (expense shortfall)", s.Status)
	}
}

func TestCatastrophicPollutionEndsTheGame(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)

	over := game.CatastrophicPollutionThreshold + 1
	s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: 100, DeltaCO2: over}})
	if s.Status != game.StatusGameOver {
		t.Fatalf("status = %s, want game_over (pollution)", s.Status)
	}
}

func TestSurvivingPastThresholdBeatsTheGame(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	card := game.Card{Title: "Print money", DeltaProfit: 100}

	for i := 0; i < game.RoundsToBeat; i++ {
		s = r.Apply(s, game.PlayCard{Card: card})
		if s.Status != game.StatusOngoing {
			t.Fatalf("status = %s at round %d, want ongoing", s.Status, s.Round())
		}
	}
	s = r.Apply(s, game.PlayCard{Card: card})
	if s.Status != game.StatusBeaten {
		t.Fatalf("status = %s after round %d, want beaten", s.Status, s.Round())
	}
}

func TestBeatenGameCanStillBeLost(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	for i := 0; i <= game.RoundsToBeat; i++ {
		s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: 1000}})
	}
	if s.Status != game.StatusBeaten {
		t.Fatalf("status = %s, want beaten", s.Status)
	}

	s = r.Apply(s, game.SetExactAmount{Amount: 0})
	s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: -1}})
	if s.Status != game.StatusGameOver {
		t.Fatalf("status = %s, want game_over (loss checks run before victory)", s.Status)
	}
}

func TestBeatenStatusIsSticky(t *testing.T) {
	r := game.NewReducer(identityShuffle)
	s := game.New(nil)
	for i := 0; i <= game.RoundsToBeat; i++ {
		s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: 1000}})
	}

	s = r.Apply(s, game.PlayCard{Card: game.Card{DeltaProfit: 1000}})
	if s.Status != game.StatusBeaten {
		t.Fatalf("status = %s after playing past victory, want beaten", s.Status)
	}
}
