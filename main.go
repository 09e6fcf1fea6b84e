// main.go
//
// CLI entry point for carbonclash. Subcommands:
//   - serve: run the HTTP backend.
//   - play:  play a run in the terminal.

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carbonclash",
	Short: "A round-based climate-tycoon card game",
	Long: `carbonclash is a single-player, round-based resource-management game:
each round you pick one card from a random hand, balancing profit against
CO₂ emissions while expenses climb every round. Survive 32 rounds to win.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
