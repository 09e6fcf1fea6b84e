// internal/cards/cards.go
//
// Card-definition loading for the game engine.
//
// Responsibilities:
//   - Load the card pool from a TOML file or fall back to the embedded
//     default deck.
//   - Degrade gracefully: any read or parse failure yields an empty pool
//     (the engine treats that as "no cards available"), never an error
//     that aborts startup.
//
// Card file format:
//   [[cards]]
//   title = "Open a coal plant"
//   help_text = "Cheap power, dirty skies."
//   delta_profit = 6.0
//   delta_co2 = 8.0
//
// Environment variables:
//   CARDS_FILE=/path/to/cards.toml   (overrides the embedded defaults)
//
// Constraints:
//   • Records without a title are dropped.
//   • Initialization is run once (sync.Once).

package cards

import (
	_ "embed"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/carbonclash/go-server/internal/game"
)

//go:embed default_cards.toml
var embeddedCards []byte

var (
	initOnce sync.Once
	pool     game.Deck
)

// cardRecord mirrors one [[cards]] entry in the TOML source.
type cardRecord struct {
	Title       string  `toml:"title"`
	HelpText    string  `toml:"help_text"`
	DeltaProfit float64 `toml:"delta_profit"`
	DeltaCO2    float64 `toml:"delta_co2"`
}

type cardFile struct {
	Cards []cardRecord `toml:"cards"`
}

// Init loads the card pool exactly once. Safe to call repeatedly.
func Init() {
	initOnce.Do(load)
}

// Pool returns the loaded card pool. Empty when loading failed.
func Pool() game.Deck {
	Init()
	return pool
}

// Count returns the number of loaded cards.
func Count() int {
	Init()
	return len(pool)
}

// load resolves the card source (env override or embedded defaults) and
// parses it. Failures log a warning and leave the pool empty.
func load() {
	data := embeddedCards
	if path := os.Getenv("CARDS_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("cards: read failed, starting with an empty pool")
			return
		}
		data = b
	}
	pool = Parse(data)
}

// Parse decodes a TOML card list into a deck. Malformed input yields an
// empty deck; records without a title are dropped.
func Parse(data []byte) game.Deck {
	var cf cardFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		log.Warn().Err(err).Msg("cards: parse failed, starting with an empty pool")
		return game.Deck{}
	}
	deck := make(game.Deck, 0, len(cf.Cards))
	for _, rec := range cf.Cards {
		if rec.Title == "" {
			continue
		}
		deck = append(deck, game.Card{
			Title:       rec.Title,
			HelpText:    rec.HelpText,
			DeltaProfit: game.Money(rec.DeltaProfit),
			DeltaCO2:    game.Emission(rec.DeltaCO2),
		})
	}
	return deck
}
