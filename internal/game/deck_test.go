package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/carbonclash/go-server/internal/game"
)

func TestDrawBound(t *testing.T) {
	deck := testDeck()
	tests := []struct {
		k    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		h := deck.Draw(tt.k, identityShuffle)
		if len(h) != tt.want {
			t.Fatalf("Draw(%d) returned %d cards, want %d", tt.k, len(h), tt.want)
		}
	}
}

func TestDrawFromEmptyDeck(t *testing.T) {
	var deck game.Deck
	if h := deck.Draw(3, identityShuffle); len(h) != 0 {
		t.Fatalf("Draw from empty deck returned %d cards, want 0", len(h))
	}
}

func TestDrawnCardsComeFromTheDeck(t *testing.T) {
	deck := testDeck()
	titles := map[string]int{}
	for _, c := range deck {
		titles[c.Title]++
	}

	h := deck.Draw(3, game.RandomShuffle)
	for _, c := range h {
		if titles[c.Title] == 0 {
			t.Fatalf("drawn card %q not present in deck", c.Title)
		}
		titles[c.Title]--
	}
}

func TestDrawIsNonDestructive(t *testing.T) {
	deck := testDeck()
	before := make([]game.Card, len(deck))
	copy(before, deck)

	for i := 0; i < 5; i++ {
		_ = deck.Draw(2, game.RandomShuffle)
	}
	if len(deck) != len(before) {
		t.Fatalf("deck size = %d after draws, want %d", len(deck), len(before))
	}
	seen := map[string]int{}
	for _, c := range deck {
		seen[c.Title]++
	}
	for _, c := range before {
		if seen[c.Title] == 0 {
			t.Fatalf("deck lost card %q across draws", c.Title)
		}
		seen[c.Title]--
	}
}

func TestSeededDrawIsReproducible(t *testing.T) {
	deck := testDeck()
	shuffleA := rand.New(rand.NewPCG(7, 11)).Shuffle
	shuffleB := rand.New(rand.NewPCG(7, 11)).Shuffle

	a := deck.Draw(3, shuffleA)
	b := deck.Draw(3, shuffleB)
	for i := range a {
		if a[i].Title != b[i].Title {
			t.Fatalf("seeded draws diverge at %d: %q vs %q", i, a[i].Title, b[i].Title)
		}
	}
}

func TestPick(t *testing.T) {
	h := game.Hand(testDeck())
	if c, ok := h.Pick(0); !ok || c.Title != "Open a coal plant" {
		t.Fatalf("Pick(0) = %v, %v", c, ok)
	}
	if c, ok := h.Pick(2); !ok || c.Title != "Plant a forest" {
		t.Fatalf("Pick(2) = %v, %v", c, ok)
	}
	if _, ok := h.Pick(-1); ok {
		t.Fatal("Pick(-1) resolved a card, want no selection")
	}
	if _, ok := h.Pick(3); ok {
		t.Fatal("Pick(3) resolved a card, want no selection")
	}
}
