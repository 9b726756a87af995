package diplomacy

import "sort"

// GameStatus is the overall lifecycle status of a game.
type GameStatus string

const (
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)

// NationStatus is a nation's status within a game.
type NationStatus string

const (
	NationActive     NationStatus = "active"
	NationEliminated NationStatus = "eliminated"
)

// Nation is a game-scoped player record.
type Nation struct {
	ID     string       `json:"nation_id"`
	Status NationStatus `json:"status"`
}

// TerritoryState is the persisted ownership record for one region. Only
// supply-center-bearing regions that have ever been occupied in a Fall are
// tracked, per spec.md's territory-ownership definition.
type TerritoryState struct {
	TerritoryID NodeID `json:"territory_id"`
	OwnerID     string `json:"owner_id"`
}

// GameMeta is the game.json record.
type GameMeta struct {
	GameID   string `json:"game_id"`
	Variant  string `json:"variant"`
	TurnCode string `json:"turn_code"`
	Status   string `json:"status"`
}

// GameState is the raw, on-disk snapshot of one game: the unit table,
// territory ownership, player statuses, and submitted raw orders. It
// carries no derived indices; those are rebuilt by Load.
type GameState struct {
	Meta           GameMeta
	Players        map[string]*Nation
	Units          map[string]*UnitRecord
	TerritoryOwner map[NodeID]string
	RawOrders      map[string][]string
}

// LoadedState is a GameState plus the indices derived from it: the
// territory->unit lookup (rebuilt from the unit table, never persisted,
// per spec.md's single-source-of-truth design note), the per-(owner,type)
// unit-id counters, and, when entering a Retreat phase, the dislodgement
// and standoff information carried over from the pending Movement report.
type LoadedState struct {
	Game                *GameState
	TerritoryToUnit      map[NodeID]string
	Counters            map[string]int
	PendingReport       *PhaseResolutionReport // non-nil only while in Retreat phase
}

// BuildTerritoryToUnit rebuilds the territory->unit index from the unit
// table. It is the only source of truth for occupancy; this index must
// never be persisted and must always be rebuilt this way after load.
func BuildTerritoryToUnit(units map[string]*UnitRecord) map[NodeID]string {
	idx := make(map[NodeID]string, len(units))
	for id, u := range units {
		idx[u.TerritoryID] = id
	}
	return idx
}

// BuildCounters rebuilds the per-(owner,type) monotonic counters from the
// unit table by scanning every live unit id's numeric suffix.
func BuildCounters(units map[string]*UnitRecord) map[string]int {
	counters := make(map[string]int)
	for _, u := range units {
		key := counterKey(u.OwnerID, u.UnitType)
		n := unitIDCounter(u.ID)
		if n > counters[key] {
			counters[key] = n
		}
	}
	return counters
}

// unitIDCounter extracts the numeric suffix of a "<owner>_<type>_<n>" id.
func unitIDCounter(id string) int {
	lastUnderscore := -1
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '_' {
			lastUnderscore = i
			break
		}
	}
	if lastUnderscore < 0 {
		return 0
	}
	n := 0
	for i := lastUnderscore + 1; i < len(id); i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// Load derives a LoadedState from a raw GameState. It is always pure: it
// never mutates game.
func Load(game *GameState) *LoadedState {
	return &LoadedState{
		Game:            game,
		TerritoryToUnit: BuildTerritoryToUnit(game.Units),
		Counters:        BuildCounters(game.Units),
	}
}

// UnitAt returns the unit occupying territory, or nil.
func (ls *LoadedState) UnitAt(territory NodeID) *UnitRecord {
	id, ok := ls.TerritoryToUnit[territory]
	if !ok {
		return nil
	}
	return ls.Game.Units[id]
}

// UnitsOf returns all units belonging to nation, sorted by unit id.
func (ls *LoadedState) UnitsOf(nation string) []*UnitRecord {
	var out []*UnitRecord
	for _, u := range ls.Game.Units {
		if u.OwnerID == nation {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SupplyCenterCount returns how many supply centers nation currently owns.
func (ls *LoadedState) SupplyCenterCount(nation string) int {
	n := 0
	for _, owner := range ls.Game.TerritoryOwner {
		if owner == nation {
			n++
		}
	}
	return n
}

// IsDislodged reports whether the unit at territory was dislodged in the
// pending Movement report, and returns that result.
func (ls *LoadedState) IsDislodged(territory NodeID) (ResolutionResult, bool) {
	if ls.PendingReport == nil {
		return ResolutionResult{}, false
	}
	for _, res := range ls.PendingReport.ResolutionResults {
		if res.OriginTerritory == territory && res.Outcome == Dislodged {
			return res, true
		}
	}
	return ResolutionResult{}, false
}

// IsStandoffTile reports whether territory was a standoff tile in the
// pending Movement report.
func (ls *LoadedState) IsStandoffTile(territory NodeID) bool {
	return ls.PendingReport != nil && ls.PendingReport.IsStandoff(territory)
}

// unitMovement describes one unit's territory change, used by
// ApplyUnitMovements.
type unitMovement struct {
	UnitID      string
	NewTerritory NodeID
}

// ApplyUnitMovements returns a *new* unit table reflecting the given
// movements, leaving the input unmodified; the territory->unit index is not
// returned and is rebuilt from the table by Load. This is
// the decided contract for the source's conflicting apply_unit_movements
// versions (see DESIGN.md): return-new-value, never mutate-in-place.
func ApplyUnitMovements(units map[string]*UnitRecord, moves []unitMovement) map[string]*UnitRecord {
	next := make(map[string]*UnitRecord, len(units))
	for id, u := range units {
		cp := *u
		next[id] = &cp
	}
	for _, m := range moves {
		if u, ok := next[m.UnitID]; ok {
			u.TerritoryID = m.NewTerritory
		}
	}
	return next
}
