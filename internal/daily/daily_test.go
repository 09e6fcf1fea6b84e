package daily_test

import (
	"testing"
	"time"

	"github.com/carbonclash/go-server/internal/daily"
	"github.com/carbonclash/go-server/internal/game"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*3600)
	// 01:00 on Jan 2 in UTC+13 is still Jan 1 in UTC.
	ts := time.Date(2026, 1, 2, 1, 0, 0, 0, loc)
	if got := daily.DateKey(ts); got != "2026-01-01" {
		t.Fatalf("DateKey = %q, want 2026-01-01", got)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a1, a2 := daily.Seed("2026-01-01", "salt", 0)
	b1, b2 := daily.Seed("2026-01-01", "salt", 0)
	if a1 != b1 || a2 != b2 {
		t.Fatal("same date/salt/round produced different seeds")
	}
}

func TestSeedVariesByInput(t *testing.T) {
	base1, base2 := daily.Seed("2026-01-01", "salt", 0)
	variants := []struct {
		name string
		date string
		salt string
		rnd  int
	}{
		{"different date", "2026-01-02", "salt", 0},
		{"different salt", "2026-01-01", "pepper", 0},
		{"different round", "2026-01-01", "salt", 1},
	}
	for _, v := range variants {
		s1, s2 := daily.Seed(v.date, v.salt, v.rnd)
		if s1 == base1 && s2 == base2 {
			t.Fatalf("%s produced the base seed", v.name)
		}
	}
}

func TestShufflerGivesIdenticalDraws(t *testing.T) {
	deck := game.Deck{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"},
	}
	h1 := deck.Draw(3, daily.Shuffler("2026-01-01", "salt", 4))
	h2 := deck.Draw(3, daily.Shuffler("2026-01-01", "salt", 4))
	for i := range h1 {
		if h1[i].Title != h2[i].Title {
			t.Fatalf("draw %d differs: %q vs %q", i, h1[i].Title, h2[i].Title)
		}
	}
}
