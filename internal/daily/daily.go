// internal/daily/daily.go
//
// Deterministic shuffling for the daily run: every player gets the same
// card draws on a given date. The per-date seed is HMAC-SHA256(salt, key)
// where key is the date plus the round number, so each round's draw is
// reproducible without carrying RNG state between requests.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/carbonclash/go-server/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives the deterministic PCG seed for a date key and round.
func Seed(dateKey, salt string, round int) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	fmt.Fprintf(h, "%s:%d", dateKey, round)
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Shuffler returns a shuffle capability seeded for the given date key and
// round. Same inputs, same shuffle.
func Shuffler(dateKey, salt string, round int) game.ShuffleFunc {
	s1, s2 := Seed(dateKey, salt, round)
	return rand.New(rand.NewPCG(s1, s2)).Shuffle
}
