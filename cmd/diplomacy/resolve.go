package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hlyeh/diplomacy-resolver/internal/config"
	"github.com/hlyeh/diplomacy-resolver/internal/store"
	"github.com/hlyeh/diplomacy-resolver/internal/variant"
	"github.com/hlyeh/diplomacy-resolver/pkg/diplomacy"
)

func newResolveCmd(cfg *config.Config) *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "resolve the active phase and advance the game",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.GamesRoot, gameID)
			if err != nil {
				return fmt.Errorf("open game %s: %w", gameID, err)
			}
			game, err := s.LoadGame()
			if err != nil {
				return fmt.Errorf("load game %s: %w", gameID, err)
			}
			v, err := variant.Load(cfg.VariantRoot)
			if err != nil {
				return fmt.Errorf("load variant: %w", err)
			}

			loaded := diplomacy.Load(game)
			if turn, terr := diplomacy.ParseTurnCode(game.Meta.TurnCode); terr == nil && turn.Phase == diplomacy.PhaseRetreat {
				prevTurn := diplomacy.TurnCode{YearIndex: turn.YearIndex, Season: turn.Season, Phase: diplomacy.PhaseMovement}
				report, rerr := s.LoadReport(prevTurn.String())
				if rerr != nil {
					return fmt.Errorf("load pending report: %w", rerr)
				}
				loaded.PendingReport = report
			}

			rawOrders, err := s.LoadOrders()
			if err != nil {
				return fmt.Errorf("load orders: %w", err)
			}

			report, next, err := diplomacy.ProcessPhase(loaded, v.Rules, rawOrders)
			if err != nil {
				return fmt.Errorf("resolve phase: %w", err)
			}
			if err := s.WriteReport(report); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if err := s.WriteGame(next); err != nil {
				return fmt.Errorf("write game state: %w", err)
			}

			log.Info().
				Str("game_id", gameID).
				Str("turn_code", report.TurnCode).
				Int("results", len(report.ResolutionResults)).
				Str("next_turn_code", next.Meta.TurnCode).
				Msg("phase resolved")

			if winner, ok := diplomacy.SoloVictor(next.TerritoryOwner); ok {
				fmt.Printf("solo victory: %s\n", winner)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game-id", "", "game id")
	_ = cmd.MarkFlagRequired("game-id")
	return cmd
}
