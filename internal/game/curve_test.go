package game_test

import (
	"testing"

	"github.com/carbonclash/go-server/internal/game"
)

func TestExpensesCurve(t *testing.T) {
	tests := []struct {
		round int
		want  float64
	}{
		{0, 0.8},
		{1, 0.96},
		{2, 1.152},
		{5, 0.8 * 1.2 * 1.2 * 1.2 * 1.2 * 1.2},
	}
	for _, tt := range tests {
		got := float64(game.Expenses(tt.round))
		if !almostEqual(got, tt.want) {
			t.Fatalf("Expenses(%d) = %v, want %v", tt.round, got, tt.want)
		}
	}
}

func TestExpensesStrictlyIncrease(t *testing.T) {
	prev := game.Expenses(0)
	for round := 1; round <= 40; round++ {
		cur := game.Expenses(round)
		if cur <= prev {
			t.Fatalf("Expenses(%d) = %v not greater than Expenses(%d) = %v",
				round, cur, round-1, prev)
		}
		prev = cur
	}
}

func TestExpensesSentinelFallback(t *testing.T) {
	want := game.Expenses(32)
	if got := game.Expenses(-1); got != want {
		t.Fatalf("Expenses(-1) = %v, want sentinel value %v", got, want)
	}
	if got := game.Expenses(1 << 40); got != want {
		t.Fatalf("Expenses(1<<40) = %v, want sentinel value %v", got, want)
	}
}
