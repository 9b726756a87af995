package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hlyeh/diplomacy-resolver/internal/config"
	"github.com/hlyeh/diplomacy-resolver/internal/store"
)

func newOrdersCmd(cfg *config.Config) *cobra.Command {
	var gameID, nation string
	cmd := &cobra.Command{
		Use:   "orders [order ...]",
		Short: "submit a nation's raw order strings for the active phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.GamesRoot, gameID)
			if err != nil {
				return fmt.Errorf("open game %s: %w", gameID, err)
			}
			if err := s.SubmitOrders(nation, args); err != nil {
				return fmt.Errorf("submit orders for %s: %w", nation, err)
			}
			log.Info().Str("game_id", gameID).Str("nation", nation).Int("count", len(args)).Msg("orders submitted")
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game-id", "", "game id")
	cmd.Flags().StringVar(&nation, "nation", "", "nation submitting these orders")
	_ = cmd.MarkFlagRequired("game-id")
	_ = cmd.MarkFlagRequired("nation")
	return cmd
}
