// play.go
//
// The `play` subcommand: a terminal driver for the game engine.
//
// The driver owns all I/O; the engine only ever sees (state, action) pairs.
// Each round it draws a hand, asks for a 1-based selection, converts it to
// the hand's 0-based index, and plays the chosen card — or leaves the
// round's state unchanged on an invalid selection. The loop is iterative
// with an exit condition on game over, and it checks the status after each
// transition; the reducer itself never refuses one.

package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carbonclash/go-server/internal/cards"
	"github.com/carbonclash/go-server/internal/game"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run in the terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cards.Init()

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	reducer := game.NewReducer(nil)
	state := game.New(cards.Pool())

	for {
		fmt.Fprintln(out, "============")
		switch state.Status {
		case game.StatusGameOver:
			fmt.Fprintf(out, "Game over, you made it to Round %d\n", state.Round())
			return nil
		case game.StatusBeaten:
			fmt.Fprintln(out, "YOU WON! The game goes on!")
		}
		fmt.Fprintln(out, state)

		state = reducer.Apply(state, game.DrawCards{Count: game.DefaultHandSize})
		if len(state.Hand) == 0 {
			fmt.Fprintln(out, "No cards available, ending the run")
			return nil
		}
		fmt.Fprintln(out, state.Hand)

		fmt.Fprint(out, "Pick one ")
		if !in.Scan() {
			return in.Err()
		}
		card, ok := game.EmptyCard, false
		if n, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil {
			card, ok = state.Hand.Pick(n - 1)
		}
		if !ok {
			fmt.Fprintln(out, "Invalid selection, try again")
			continue
		}
		fmt.Fprintf(out, "Selected: %s\n", card)
		state = reducer.Apply(state, game.PlayCard{Card: card})
	}
}
