package diplomacy

import "sort"

// ResolveRetreats adjudicates a Retreat phase (C4's retreat mode). Every
// dislodged unit either has a validated RetreatOrder in chosen or is
// treated as an implicit disband. A retreat that validated individually
// still fails if two or more dislodged units targeted the same
// destination: all of them are disbanded instead, mirroring how a
// Movement-phase standoff bounces every contender rather than picking one.
func ResolveRetreats(chosen map[string]SemanticResult, state *LoadedState, rules *Rules) []ResolutionResult {
	dislodgedIDs := make([]string, 0)
	for _, res := range state.PendingReport.ResolutionResults {
		if res.Outcome == Dislodged {
			dislodgedIDs = append(dislodgedIDs, res.UnitID)
		}
	}
	sort.Strings(dislodgedIDs)

	targetCounts := make(map[NodeID]int)
	for _, id := range dislodgedIDs {
		sem, ok := chosen[id]
		if !ok || !sem.Valid {
			continue
		}
		ro, ok := sem.Order.(RetreatOrder)
		if !ok {
			continue
		}
		targetCounts[ro.To]++
	}

	results := make([]ResolutionResult, 0, len(dislodgedIDs))
	for _, id := range dislodgedIDs {
		u := state.Game.Units[id]
		if u == nil {
			continue
		}
		res := ResolutionResult{
			UnitID:          id,
			OwnerID:         u.OwnerID,
			UnitType:        u.UnitType,
			OriginTerritory: u.TerritoryID,
			ResolvedTerritory: u.TerritoryID,
		}

		sem, ok := chosen[id]
		ro, isRetreat := sem.Order.(RetreatOrder)
		switch {
		case !ok || !sem.Valid || !isRetreat:
			res.Outcome = RetreatFailed
		case targetCounts[ro.To] > 1:
			res.Outcome = RetreatFailed
			res.Destination = ro.To
		default:
			res.Outcome = RetreatSuccess
			res.Destination = ro.To
			res.ResolvedTerritory = ro.To
		}
		if sem.Order != nil {
			s := sem
			res.Semantic = &s
		}
		results = append(results, res)
	}
	return results
}

// RetreatMovements extracts the unit relocations implied by a retreat
// report, ready for ApplyUnitMovements. Disbanded units are reported
// separately since they leave the unit table entirely.
func RetreatMovements(results []ResolutionResult) (moves []unitMovement, disbanded []string) {
	for _, res := range results {
		switch res.Outcome {
		case RetreatSuccess:
			moves = append(moves, unitMovement{UnitID: res.UnitID, NewTerritory: res.ResolvedTerritory})
		case RetreatFailed:
			disbanded = append(disbanded, res.UnitID)
		}
	}
	return moves, disbanded
}
