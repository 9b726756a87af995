package diplomacy

import (
	"sort"

	"github.com/hlyeh/diplomacy-resolver/internal/directerr"
)

// SoloVictoryThreshold is the supply-center count that ends the game for
// whichever nation reaches it.
const SoloVictoryThreshold = 18

// ProcessPhase is the pure core of the Phase Orchestrator (C5): given a
// loaded state, its rules, and the raw order strings submitted by each
// nation this phase, it runs C2 (parse) -> C3 (validate) -> C4 (resolve)
// for the active phase, applies the resulting state-mutation policy, and
// returns the phase report plus the next GameState. It never touches disk;
// reading and writing the game directory is the caller's job (internal/store).
func ProcessPhase(state *LoadedState, rules *Rules, rawOrders map[string][]string) (*PhaseResolutionReport, *GameState, error) {
	turn, err := ParseTurnCode(state.Game.Meta.TurnCode)
	if err != nil {
		return nil, nil, err
	}
	if turn.Phase == PhaseRetreat && state.PendingReport == nil {
		return nil, nil, directerr.ErrMissingPendingReport
	}

	syn, sem := parseAndValidate(state, rules, turn.Phase, rawOrders)

	report := &PhaseResolutionReport{
		Year:   turn.Year(),
		Season: turn.Season,
		Phase:  turn.Phase,
	}
	for _, s := range syn {
		if s.Valid {
			report.ValidSyntax = append(report.ValidSyntax, s)
		} else {
			report.SyntaxErrors = append(report.SyntaxErrors, s)
		}
	}
	for _, s := range sem {
		if s.Valid {
			report.ValidSemantics = append(report.ValidSemantics, s)
		} else {
			report.SemanticErrors = append(report.SemanticErrors, s)
		}
	}

	var results []ResolutionResult
	var standoffs []NodeID
	switch turn.Phase {
	case PhaseMovement:
		chosen, dups := NormalizeMovementOrders(state, sem)
		results, standoffs = ResolveMovement(chosen, dups, state, rules)
	case PhaseRetreat:
		chosen := make(map[string]SemanticResult)
		for _, s := range sem {
			if !s.Valid {
				continue
			}
			if unitID, ok := state.TerritoryToUnit[s.Order.Origin()]; ok {
				chosen[unitID] = s
			}
		}
		results = ResolveRetreats(chosen, state, rules)
	case PhaseAdjustment:
		var chosen []SemanticResult
		for _, s := range sem {
			if s.Valid {
				chosen = append(chosen, s)
			}
		}
		results = ResolveAdjustment(chosen, state, rules)
	default:
		return nil, nil, directerr.ErrUnknownPhase
	}
	report.TurnCode = turn.String()
	report.ResolutionResults = results
	report.StandoffTerritories = standoffs

	next := applyPhaseOutcome(state, rules, turn, report)
	return report, next, nil
}

func parseAndValidate(state *LoadedState, rules *Rules, phase Phase, rawOrders map[string][]string) ([]SyntaxResult, []SemanticResult) {
	type submission struct {
		nation string
		raw    string
	}
	var all []submission
	for nation, orders := range rawOrders {
		for _, raw := range orders {
			all = append(all, submission{nation, raw})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].nation != all[j].nation {
			return all[i].nation < all[j].nation
		}
		return all[i].raw < all[j].raw
	})

	syn := make([]SyntaxResult, 0, len(all))
	sem := make([]SemanticResult, 0, len(all))
	for _, sub := range all {
		s := ParseOrder(sub.nation, sub.raw, phase)
		syn = append(syn, s)
		if !s.Valid {
			continue
		}
		v := ValidateSemantic(sub.nation, s, rules, state)
		sem = append(sem, v)
	}
	return syn, sem
}

// applyPhaseOutcome implements spec.md §4.5 step 5: the state-mutation
// policy distinguishing Movement-with-dislodgement (freeze units, persist
// report, advance to Retreat) from every other phase (apply changes,
// advance past any phase with nothing to do).
func applyPhaseOutcome(state *LoadedState, rules *Rules, turn TurnCode, report *PhaseResolutionReport) *GameState {
	game := state.Game
	next := &GameState{
		Meta:           game.Meta,
		Players:        game.Players,
		Units:          game.Units,
		TerritoryOwner: copyOwnership(game.TerritoryOwner),
		RawOrders:      make(map[string][]string),
	}

	switch turn.Phase {
	case PhaseMovement:
		if report.HasDislodged() {
			next.Meta.TurnCode = TurnCode{turn.YearIndex, turn.Season, PhaseRetreat}.String()
			return next
		}
		next.Units = applyMovementResults(game.Units, report.ResolutionResults)
		if turn.Season == SeasonFall {
			next.TerritoryOwner = updateOwnership(next.Units, next.TerritoryOwner, rules)
		}
		next.Meta.TurnCode = nextAfterNoDislodgement(turn).String()
	case PhaseRetreat:
		units := applyMovementResults(game.Units, state.PendingReport.ResolutionResults)
		moves, disbanded := RetreatMovements(report.ResolutionResults)
		next.Units = ApplyUnitMovements(units, moves)
		for _, id := range disbanded {
			delete(next.Units, id)
		}
		if turn.Season == SeasonFall {
			next.TerritoryOwner = updateOwnership(next.Units, next.TerritoryOwner, rules)
			next.Meta.TurnCode = TurnCode{turn.YearIndex, SeasonWinter, PhaseAdjustment}.String()
		} else {
			next.Meta.TurnCode = TurnCode{turn.YearIndex, SeasonFall, PhaseMovement}.String()
		}
	case PhaseAdjustment:
		builds, disbandIDs := AdjustmentChanges(report.ResolutionResults, state.Counters)
		next.Units = copyUnits(game.Units)
		for _, id := range disbandIDs {
			delete(next.Units, id)
		}
		for _, u := range builds {
			next.Units[u.ID] = u
		}
		next.TerritoryOwner = updateOwnership(next.Units, next.TerritoryOwner, rules)
		next.Meta.TurnCode = TurnCode{turn.YearIndex + 1, SeasonSpring, PhaseMovement}.String()
	}

	next.Players = eliminateEmptyNations(game.Players, next.TerritoryOwner)
	return next
}

func nextAfterNoDislodgement(turn TurnCode) TurnCode {
	if turn.Season == SeasonFall {
		return TurnCode{turn.YearIndex, SeasonWinter, PhaseAdjustment}
	}
	return TurnCode{turn.YearIndex, SeasonFall, PhaseMovement}
}

func applyMovementResults(units map[string]*UnitRecord, results []ResolutionResult) map[string]*UnitRecord {
	var moves []unitMovement
	for _, res := range results {
		if res.Outcome == MoveSuccess {
			moves = append(moves, unitMovement{UnitID: res.UnitID, NewTerritory: res.ResolvedTerritory})
		}
	}
	return ApplyUnitMovements(units, moves)
}

func copyUnits(units map[string]*UnitRecord) map[string]*UnitRecord {
	next := make(map[string]*UnitRecord, len(units))
	for id, u := range units {
		cp := *u
		next[id] = &cp
	}
	return next
}

func copyOwnership(owners map[NodeID]string) map[NodeID]string {
	next := make(map[NodeID]string, len(owners))
	for k, v := range owners {
		next[k] = v
	}
	return next
}

// updateOwnership flips a supply center to its current occupant's owner,
// run after Fall Movement application, after a Fall Retreat, and after
// Adjustment.
func updateOwnership(units map[string]*UnitRecord, owners map[NodeID]string, rules *Rules) map[NodeID]string {
	occupant := make(map[NodeID]string)
	for _, u := range units {
		occupant[rules.ParentOf(u.TerritoryID)] = u.OwnerID
	}
	next := copyOwnership(owners)
	for _, region := range rules.Regions() {
		if !rules.IsSupplyCenter(region) {
			continue
		}
		if owner, occupied := occupant[region]; occupied {
			next[region] = owner
		}
	}
	return next
}

func eliminateEmptyNations(players map[string]*Nation, owners map[NodeID]string) map[string]*Nation {
	owned := make(map[string]bool)
	for _, owner := range owners {
		owned[owner] = true
	}
	next := make(map[string]*Nation, len(players))
	for id, n := range players {
		cp := *n
		if cp.Status == NationActive && !owned[id] {
			cp.Status = NationEliminated
		}
		next[id] = &cp
	}
	return next
}

// SoloVictor returns the nation with at least SoloVictoryThreshold supply
// centers, if any.
func SoloVictor(owners map[NodeID]string) (string, bool) {
	counts := make(map[string]int)
	for _, owner := range owners {
		counts[owner]++
	}
	nations := make([]string, 0, len(counts))
	for n := range counts {
		nations = append(nations, n)
	}
	sort.Strings(nations)
	for _, n := range nations {
		if counts[n] >= SoloVictoryThreshold {
			return n, true
		}
	}
	return "", false
}
