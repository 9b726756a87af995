package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hlyeh/diplomacy-resolver/internal/config"
	"github.com/hlyeh/diplomacy-resolver/internal/store"
	"github.com/hlyeh/diplomacy-resolver/internal/variant"
)

func newStartCmd(cfg *config.Config) *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == "" {
				gameID = uuid.NewString()
			}
			v, err := variant.Load(cfg.VariantRoot)
			if err != nil {
				return fmt.Errorf("load variant: %w", err)
			}
			game, err := v.NewGameState(gameID)
			if err != nil {
				return fmt.Errorf("build opening state: %w", err)
			}
			if _, err := store.Create(cfg.GamesRoot, game); err != nil {
				return fmt.Errorf("create game %s: %w", gameID, err)
			}
			log.Info().Str("game_id", gameID).Str("variant", v.Name).Str("turn_code", game.Meta.TurnCode).Msg("game started")
			fmt.Println(gameID)
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game-id", "", "game id to assign (random if omitted)")
	return cmd
}
