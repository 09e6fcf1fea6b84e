// internal/game/deck.go
//
// Deck and hand model for the carbonclash game engine.
// Responsibilities:
//   - Deck: the full card pool available for a playthrough.
//   - Hand: the per-round drawn subset, indexable by player selection.
//   - Draw: uniform-random sampling with an injected shuffle capability.
//
// Draws are non-destructive: the deck keeps all of its cards across rounds.
// The shuffle source is injected so the daily mode and tests can seed it.

package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ShuffleFunc randomizes n elements in place through swap.
// The signature matches rand.Shuffle so rand sources plug in directly.
type ShuffleFunc func(n int, swap func(i, j int))

// RandomShuffle is the default shuffle capability.
func RandomShuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Deck is the ordered pool of cards available for a playthrough.
type Deck []Card

// Hand is the ordered subset of the deck offered for the current round.
type Hand []Card

// Draw returns min(k, len(d)) cards sampled without replacement by
// shuffling a working copy of the deck and taking a prefix. The deck
// itself is left untouched. A nil shuffle falls back to RandomShuffle.
func (d Deck) Draw(k int, shuffle ShuffleFunc) Hand {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	if k < 0 {
		k = 0
	}
	if k > len(d) {
		k = len(d)
	}
	working := make([]Card, len(d))
	copy(working, d)
	shuffle(len(working), func(i, j int) {
		working[i], working[j] = working[j], working[i]
	})
	return Hand(working[:k])
}

// Pick returns the card at index i (0-based), or false when i is out of
// range. Callers must treat false as "no selection made".
func (h Hand) Pick(i int) (Card, bool) {
	if i < 0 || i >= len(h) {
		return Card{}, false
	}
	return h[i], true
}

// String renders the hand as a numbered list for display, 1-based to match
// what a player types.
func (h Hand) String() string {
	var b strings.Builder
	for i, c := range h {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, c)
		if c.HelpText != "" {
			fmt.Fprintf(&b, "    %s\n", c.HelpText)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
