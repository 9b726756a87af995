// Package store implements the game-directory I/O layer: the thin,
// deliberately dumb persistence described by spec.md's EXTERNAL INTERFACES
// section. It reads and writes the six on-disk files that make up one
// game's durable state; every adjudication decision happens upstream in
// pkg/diplomacy, which never touches a filesystem.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/hlyeh/diplomacy-resolver/internal/directerr"
	"github.com/hlyeh/diplomacy-resolver/pkg/diplomacy"
)

const reportsDir = "reports"

// Store roots every game directory operation at Root ("<games-root>/<game_id>").
type Store struct {
	Root string
}

// Open returns a Store bound to gameID under gamesRoot, failing with
// ErrGameNotFound if the directory is absent.
func Open(gamesRoot, gameID string) (*Store, error) {
	dir := filepath.Join(gamesRoot, gameID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, directerr.ErrGameNotFound
		}
		return nil, err
	}
	return &Store{Root: dir}, nil
}

// Create makes a new game directory and writes its opening state, failing
// with ErrGameExists if the directory is already present.
func Create(gamesRoot string, game *diplomacy.GameState) (*Store, error) {
	dir := filepath.Join(gamesRoot, game.Meta.GameID)
	if _, err := os.Stat(dir); err == nil {
		return nil, directerr.ErrGameExists
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, reportsDir), 0o755); err != nil {
		return nil, err
	}
	s := &Store{Root: dir}
	if err := s.WriteGame(game); err != nil {
		return nil, err
	}
	return s, nil
}

// gameFile mirrors the wire shape of game.json, and territoryRecord that of
// one entry of territory_state.json. players.json, units.json, and
// orders.json are read and written directly as maps of the diplomacy types.
type gameFile struct {
	GameID   string `json:"game_id"`
	Variant  string `json:"variant"`
	TurnCode string `json:"turn_code"`
	Status   string `json:"status"`
}

type territoryRecord struct {
	TerritoryID string `json:"territory_id"`
	OwnerID     string `json:"owner_id"`
}

// LoadGame reads every file of the game directory and assembles a GameState.
func (s *Store) LoadGame() (*diplomacy.GameState, error) {
	var gf gameFile
	if err := readJSON(filepath.Join(s.Root, "game.json"), &gf); err != nil {
		return nil, err
	}

	var players map[string]*diplomacy.Nation
	if err := readJSON(filepath.Join(s.Root, "players.json"), &players); err != nil {
		return nil, err
	}

	var units map[string]*diplomacy.UnitRecord
	if err := readJSON(filepath.Join(s.Root, "units.json"), &units); err != nil {
		return nil, err
	}

	var territories map[string]territoryRecord
	if err := readJSON(filepath.Join(s.Root, "territory_state.json"), &territories); err != nil {
		return nil, err
	}
	owners := make(map[string]string, len(territories))
	for id, t := range territories {
		owners[id] = t.OwnerID
	}

	var orders map[string][]string
	if err := readJSON(filepath.Join(s.Root, "orders.json"), &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make(map[string][]string)
	}

	return &diplomacy.GameState{
		Meta: diplomacy.GameMeta{
			GameID:   gf.GameID,
			Variant:  gf.Variant,
			TurnCode: gf.TurnCode,
			Status:   gf.Status,
		},
		Players:        players,
		Units:          units,
		TerritoryOwner: owners,
		RawOrders:      orders,
	}, nil
}

// WriteGame persists every file of the game directory from game, overwriting
// whatever was there before. orders.json is reset empty: a fresh phase
// starts with no orders submitted.
func (s *Store) WriteGame(game *diplomacy.GameState) error {
	gf := gameFile{
		GameID:   game.Meta.GameID,
		Variant:  game.Meta.Variant,
		TurnCode: game.Meta.TurnCode,
		Status:   game.Meta.Status,
	}
	if err := writeJSON(filepath.Join(s.Root, "game.json"), gf); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.Root, "players.json"), game.Players); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.Root, "units.json"), game.Units); err != nil {
		return err
	}
	territories := make(map[string]territoryRecord, len(game.TerritoryOwner))
	for id, owner := range game.TerritoryOwner {
		territories[id] = territoryRecord{TerritoryID: id, OwnerID: owner}
	}
	if err := writeJSON(filepath.Join(s.Root, "territory_state.json"), territories); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.Root, "orders.json"), map[string][]string{})
}

// LoadOrders reads the currently submitted raw orders for the active phase.
func (s *Store) LoadOrders() (map[string][]string, error) {
	var orders map[string][]string
	if err := readJSON(filepath.Join(s.Root, "orders.json"), &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make(map[string][]string)
	}
	return orders, nil
}

// SubmitOrders appends nation's raw order strings to orders.json, replacing
// any previous submission from the same nation for this phase.
func (s *Store) SubmitOrders(nation string, rawOrders []string) error {
	orders, err := s.LoadOrders()
	if err != nil {
		return err
	}
	orders[nation] = rawOrders
	return writeJSON(filepath.Join(s.Root, "orders.json"), orders)
}

// LoadReport reads the persisted PhaseResolutionReport for turnCode, or
// ErrReportNotFound if none was ever written.
func (s *Store) LoadReport(turnCode string) (*diplomacy.PhaseResolutionReport, error) {
	path := filepath.Join(s.Root, reportsDir, turnCode+"_report.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, directerr.ErrReportNotFound
	}
	var report diplomacy.PhaseResolutionReport
	if err := readJSON(path, &report); err != nil {
		return nil, directerr.ErrCorruptReportFile
	}
	return &report, nil
}

// WriteReport persists report under its own turn code.
func (s *Store) WriteReport(report *diplomacy.PhaseResolutionReport) error {
	path := filepath.Join(s.Root, reportsDir, report.TurnCode+"_report.json")
	return writeJSON(path, report)
}

// ListGames enumerates the game ids present directly under gamesRoot.
func ListGames(gamesRoot string) ([]string, error) {
	entries, err := os.ReadDir(gamesRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return directerr.ErrCorruptGameFile
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return directerr.ErrCorruptGameFile
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
