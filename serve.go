// serve.go
//
// The `serve` subcommand: wires card pool, SQLite, session store, and the
// HTTP server together.
//
// Environment variables:
//   PORT         listen port            (default 5175)
//   DB_PATH      SQLite file            (default ./data/app.db)
//   CARDS_FILE   card-definition TOML   (default: embedded deck)
//   LOG_LEVEL    zerolog level          (default info)
//   JWT_SECRET, DAILY_SALT, CLIENT_ORIGIN, COOKIE_NAME — see internal/httpserver.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carbonclash/go-server/internal/cards"
	"github.com/carbonclash/go-server/internal/httpserver"
	"github.com/carbonclash/go-server/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the carbonclash HTTP backend",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cards.Init()
	if cards.Count() == 0 {
		// Playable in principle, but every hand will be empty.
		log.Warn().Msg("card pool is empty")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, cards.Pool())
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("cards", cards.Count()).Msg("starting carbonclash-go")
	return srv.Start(":" + port)
}
