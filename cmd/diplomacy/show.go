package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hlyeh/diplomacy-resolver/internal/config"
	"github.com/hlyeh/diplomacy-resolver/internal/store"
)

func newShowCmd(cfg *config.Config) *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "print a game's current turn code, units, and ownership",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.GamesRoot, gameID)
			if err != nil {
				return fmt.Errorf("open game %s: %w", gameID, err)
			}
			game, err := s.LoadGame()
			if err != nil {
				return fmt.Errorf("load game %s: %w", gameID, err)
			}

			fmt.Printf("game %s (%s) turn %s status %s\n", game.Meta.GameID, game.Meta.Variant, game.Meta.TurnCode, game.Meta.Status)

			unitIDs := make([]string, 0, len(game.Units))
			for id := range game.Units {
				unitIDs = append(unitIDs, id)
			}
			sort.Strings(unitIDs)
			for _, id := range unitIDs {
				u := game.Units[id]
				fmt.Printf("  %-5s %-10s %s %s\n", u.ID, u.OwnerID, u.UnitType, u.TerritoryID)
			}

			territories := make([]string, 0, len(game.TerritoryOwner))
			for id := range game.TerritoryOwner {
				territories = append(territories, id)
			}
			sort.Strings(territories)
			for _, id := range territories {
				fmt.Printf("  %-5s owned by %s\n", id, game.TerritoryOwner[id])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game-id", "", "game id")
	_ = cmd.MarkFlagRequired("game-id")
	return cmd
}
