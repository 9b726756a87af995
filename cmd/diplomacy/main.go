// Package main implements the diplomacy CLI. It drives one game directory
// through the phase lifecycle: starting a game, recording orders, resolving
// a phase, and showing the current state.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hlyeh/diplomacy-resolver/internal/config"
	"github.com/hlyeh/diplomacy-resolver/internal/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "diplomacy",
		Short:         "adjudicate Diplomacy game phases from a game directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.GamesRoot, "games-dir", cfg.GamesRoot, "directory holding per-game subdirectories")
	root.PersistentFlags().StringVar(&cfg.VariantRoot, "variant-dir", cfg.VariantRoot, "directory holding variant world/start data (empty: embedded standard variant)")

	root.AddCommand(
		newStartCmd(cfg),
		newOrdersCmd(cfg),
		newResolveCmd(cfg),
		newShowCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
