package diplomacy

import "sort"

// ResolveAdjustment adjudicates an Adjustment phase (C4's adjustment mode).
// Builds and disbands in chosen are already semantically valid (see
// ValidateSemantic); this enforces that no nation builds more units than
// it has available slots, that every nation over its unit count disbands
// down to its supply-center count (falling back to civil disorder for any
// it left unordered), and that a second order targeting an
// already-resolved territory is recorded as a duplicate rather than acted
// on again.
func ResolveAdjustment(chosen []SemanticResult, state *LoadedState, rules *Rules) []ResolutionResult {
	var results []ResolutionResult

	nations := rules.Nations()
	sort.Strings(nations)
	for _, nation := range nations {
		owed := state.SupplyCenterCount(nation) - len(state.UnitsOf(nation))
		switch {
		case owed > 0:
			results = append(results, resolveBuildsFor(nation, owed, chosen)...)
		case owed < 0:
			results = append(results, resolveDisbandsFor(nation, -owed, chosen, state, rules)...)
		}
	}
	return results
}

func resolveBuildsFor(nation string, slots int, chosen []SemanticResult) []ResolutionResult {
	var orders []SemanticResult
	for _, sem := range chosen {
		if sem.PlayerID != nation || !sem.Valid {
			continue
		}
		if _, ok := sem.Order.(BuildOrder); ok {
			orders = append(orders, sem)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Order.(BuildOrder).At < orders[j].Order.(BuildOrder).At
	})

	var results []ResolutionResult
	byLocation := make(map[NodeID]int) // location -> index into results
	used := 0
	for _, sem := range orders {
		bo := sem.Order.(BuildOrder)
		if idx, dup := byLocation[bo.At]; dup {
			results[idx].DuplicateOrders = append(results[idx].DuplicateOrders, sem.Normalized)
			continue
		}
		outcome := BuildNoCenter
		if used < slots {
			outcome = BuildSuccess
			used++
		}
		s := sem
		res := ResolutionResult{
			OwnerID:           nation,
			UnitType:          bo.UnitType,
			OriginTerritory:   bo.At,
			ResolvedTerritory: bo.At,
			Outcome:           outcome,
			Semantic:          &s,
		}
		byLocation[bo.At] = len(results)
		results = append(results, res)
	}
	return results
}

func resolveDisbandsFor(nation string, needed int, chosen []SemanticResult, state *LoadedState, rules *Rules) []ResolutionResult {
	var results []ResolutionResult
	ordered := make(map[NodeID]bool)
	byUnit := make(map[string]int)

	var orders []SemanticResult
	for _, sem := range chosen {
		if sem.PlayerID != nation || !sem.Valid {
			continue
		}
		if _, ok := sem.Order.(DisbandOrder); ok {
			orders = append(orders, sem)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Order.(DisbandOrder).At < orders[j].Order.(DisbandOrder).At
	})

	for _, sem := range orders {
		do := sem.Order.(DisbandOrder)
		u := state.UnitAt(do.At)
		if u == nil {
			continue
		}
		if idx, dup := byUnit[u.ID]; dup {
			results[idx].DuplicateOrders = append(results[idx].DuplicateOrders, sem.Normalized)
			continue
		}
		if len(results) >= needed {
			continue
		}
		ordered[do.At] = true
		s := sem
		byUnit[u.ID] = len(results)
		results = append(results, ResolutionResult{
			UnitID:            u.ID,
			OwnerID:           nation,
			UnitType:          u.UnitType,
			OriginTerritory:   do.At,
			ResolvedTerritory: do.At,
			Outcome:           DisbandSuccess,
			Semantic:          &s,
		})
	}

	if len(results) < needed {
		results = append(results, civilDisorder(nation, needed-len(results), ordered, state, rules)...)
	}
	return results
}

// civilDisorder auto-disbands the units of nation furthest (by BFS
// distance) from any of its home centers, skipping units already disbanded
// by explicit order. A nation that leaves builds unresolved is never
// civil-disordered: excess units are only ever a disband shortfall.
func civilDisorder(nation string, count int, alreadyOrdered map[NodeID]bool, state *LoadedState, rules *Rules) []ResolutionResult {
	homes := rules.HomeCentersOf(nation)
	candidates := make([]*UnitRecord, 0)
	for _, u := range state.UnitsOf(nation) {
		if alreadyOrdered[u.TerritoryID] {
			continue
		}
		candidates = append(candidates, u)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := minDistanceToHome(candidates[i].TerritoryID, homes, rules)
		dj := minDistanceToHome(candidates[j].TerritoryID, homes, rules)
		if di != dj {
			return di > dj
		}
		return candidates[i].TerritoryID < candidates[j].TerritoryID
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	results := make([]ResolutionResult, 0, count)
	for _, u := range candidates[:count] {
		results = append(results, ResolutionResult{
			UnitID:            u.ID,
			OwnerID:           nation,
			UnitType:          u.UnitType,
			OriginTerritory:   u.TerritoryID,
			ResolvedTerritory: u.TerritoryID,
			Outcome:           DisbandSuccess,
		})
	}
	return results
}

// minDistanceToHome runs a breadth-first search over rules' adjacency graph
// from a territory to the nearest of the given home centers, ignoring
// traversal-mode restrictions since civil disorder ranks geography, not
// reachability by a particular unit type. Returns 0 if from is itself a
// home center, or a large sentinel if no path exists.
func minDistanceToHome(from NodeID, homes []NodeID, rules *Rules) int {
	homeSet := make(map[NodeID]bool, len(homes))
	for _, h := range homes {
		homeSet[h] = true
	}
	if homeSet[from] {
		return 0
	}
	visited := map[NodeID]bool{from: true}
	queue := []NodeID{from}
	dist := map[NodeID]int{from: 0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range rules.Adjacent(cur) {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			dist[e.To] = dist[cur] + 1
			if homeSet[e.To] {
				return dist[e.To]
			}
			queue = append(queue, e.To)
		}
	}
	return 999
}

// AdjustmentChanges splits an Adjustment report into the units to add and
// the unit ids to remove, ready for application to a unit table. counters
// is the state's existing per-(owner,type) counter map (see
// BuildCounters); it is read, not mutated.
func AdjustmentChanges(results []ResolutionResult, counters map[string]int) (builds []*UnitRecord, disbandIDs []string) {
	next := make(map[string]int, len(counters))
	for k, v := range counters {
		next[k] = v
	}
	for _, res := range results {
		switch res.Outcome {
		case BuildSuccess:
			key := counterKey(res.OwnerID, res.UnitType)
			next[key]++
			id := BuildUnitID(res.OwnerID, res.UnitType, next[key])
			builds = append(builds, &UnitRecord{
				ID:          id,
				UnitType:    res.UnitType,
				OwnerID:     res.OwnerID,
				TerritoryID: res.OriginTerritory,
			})
		case DisbandSuccess:
			disbandIDs = append(disbandIDs, res.UnitID)
		}
	}
	return builds, disbandIDs
}
