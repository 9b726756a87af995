package diplomacy

import "testing"

func gameWith(nation string, unitType UnitType, at string, others ...*UnitRecord) *LoadedState {
	units := map[string]*UnitRecord{
		BuildUnitID(nation, unitType, 1): {ID: BuildUnitID(nation, unitType, 1), UnitType: unitType, OwnerID: nation, TerritoryID: at},
	}
	for i, u := range others {
		cp := *u
		cp.ID = BuildUnitID(u.OwnerID, u.UnitType, i+2)
		units[cp.ID] = &cp
	}
	game := &GameState{
		Meta:           GameMeta{GameID: "test", Variant: "standard", TurnCode: InitialTurnCode.String(), Status: string(StatusActive)},
		Units:          units,
		TerritoryOwner: make(map[NodeID]string),
		RawOrders:      make(map[string][]string),
	}
	return Load(game)
}

func TestStandardRules_RegionAndSupplyCenterCounts(t *testing.T) {
	r := StandardRules()
	if len(r.Regions()) != 75 {
		t.Errorf("expected 75 regions, got %d", len(r.Regions()))
	}
	count := 0
	for _, id := range r.Regions() {
		if r.IsSupplyCenter(id) {
			count++
		}
	}
	if count != 34 {
		t.Errorf("expected 34 supply centers, got %d", count)
	}
}

func TestStandardRules_AdjacencyIsSymmetric(t *testing.T) {
	r := StandardRules()
	for _, from := range r.Regions() {
		for _, e := range r.Adjacent(from) {
			found := false
			for _, rev := range r.Adjacent(e.To) {
				if rev.To == from {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("adjacency %s -> %s has no reverse", from, e.To)
			}
		}
	}
}

func TestStandardRules_SplitCoasts(t *testing.T) {
	r := StandardRules()
	for _, tc := range []struct {
		region string
		coasts int
	}{
		{"spa", 2},
		{"stp", 2},
		{"bul", 2},
	} {
		if got := len(r.CoastsOf(tc.region)); got != tc.coasts {
			t.Errorf("%s: expected %d coasts, got %d", tc.region, tc.coasts, got)
		}
	}
}

func TestNewStandardGameState_UnitCounts(t *testing.T) {
	game := NewStandardGameState("g1")
	if game.Meta.TurnCode != InitialTurnCode.String() {
		t.Errorf("expected turn code %s, got %s", InitialTurnCode.String(), game.Meta.TurnCode)
	}
	if len(game.Units) != 22 {
		t.Errorf("expected 22 units, got %d", len(game.Units))
	}
	ls := Load(game)
	for _, nation := range StandardRules().Nations() {
		expected := 3
		if nation == NationRussia {
			expected = 4
		}
		if got := len(ls.UnitsOf(nation)); got != expected {
			t.Errorf("%s: expected %d units, got %d", nation, expected, got)
		}
	}
}

func TestRules_ArmyCannotTraverseToSea(t *testing.T) {
	r := StandardRules()
	if !r.CanTraverse("vie", "bud", false) {
		t.Error("army should move vie -> bud")
	}
	if r.CanTraverse("bre", "eng", false) {
		t.Error("army should not move bre -> eng (sea)")
	}
}

func TestRules_FleetCannotTraverseInland(t *testing.T) {
	r := StandardRules()
	if !r.CanTraverse("eng", "nth", true) {
		t.Error("fleet should move eng -> nth")
	}
	if r.CanTraverse("eng", "par", true) {
		t.Error("fleet should not move to inland par")
	}
}

func TestRules_SplitCoastFleetAdjacency(t *testing.T) {
	r := StandardRules()
	if !r.CanTraverse("spa_sc", "gol", true) {
		t.Error("F spa/sc should reach gol")
	}
	if r.CanTraverse("spa_nc", "gol", true) {
		t.Error("F spa/nc should NOT reach gol")
	}
	if !r.CanTraverse("spa_nc", "mao", true) {
		t.Error("F spa/nc should reach mao")
	}
}

// Regression: a chain where one move's destination is another move's
// origin must resolve both moves, not just the one vacating first.
func TestResolveMovement_ChainedMoves(t *testing.T) {
	rules := StandardRules()
	state := gameWith(NationFrance, Army, "par", &UnitRecord{OwnerID: NationEngland, UnitType: Fleet, TerritoryID: "bre"})

	parUnit := state.UnitAt("par").ID
	breUnit := state.UnitAt("bre").ID
	chosen := map[string]SemanticResult{
		parUnit: {PlayerID: NationFrance, Valid: true, Order: MoveOrder{From: "par", To: "bre"}},
		breUnit: {PlayerID: NationEngland, Valid: true, Order: MoveOrder{From: "bre", To: "gas"}},
	}

	results, _ := ResolveMovement(chosen, nil, state, rules)

	for _, res := range results {
		switch res.UnitID {
		case parUnit:
			if res.Outcome != MoveSuccess || res.ResolvedTerritory != "bre" {
				t.Errorf("par->bre: got outcome %v territory %s", res.Outcome, res.ResolvedTerritory)
			}
		case breUnit:
			if res.Outcome != MoveSuccess || res.ResolvedTerritory != "gas" {
				t.Errorf("bre->gas: got outcome %v territory %s", res.Outcome, res.ResolvedTerritory)
			}
		}
	}
}

// Regression: a three-way rotation A->B, B->C, C->A must resolve every leg.
func TestResolveMovement_ThreeWayRotation(t *testing.T) {
	rules := StandardRules()
	state := gameWith(NationFrance, Fleet, "bre",
		&UnitRecord{OwnerID: NationEngland, UnitType: Fleet, TerritoryID: "eng"},
		&UnitRecord{OwnerID: NationGermany, UnitType: Fleet, TerritoryID: "mao"},
	)

	breUnit := state.UnitAt("bre").ID
	engUnit := state.UnitAt("eng").ID
	maoUnit := state.UnitAt("mao").ID
	chosen := map[string]SemanticResult{
		breUnit: {PlayerID: NationFrance, Valid: true, Order: MoveOrder{From: "bre", To: "eng"}},
		engUnit: {PlayerID: NationEngland, Valid: true, Order: MoveOrder{From: "eng", To: "mao"}},
		maoUnit: {PlayerID: NationGermany, Valid: true, Order: MoveOrder{From: "mao", To: "bre"}},
	}

	results, _ := ResolveMovement(chosen, nil, state, rules)

	want := map[string]NodeID{breUnit: "eng", engUnit: "mao", maoUnit: "bre"}
	for _, res := range results {
		if res.Outcome != MoveSuccess {
			t.Errorf("unit %s: expected success, got %v", res.UnitID, res.Outcome)
			continue
		}
		if res.ResolvedTerritory != want[res.UnitID] {
			t.Errorf("unit %s: expected %s, got %s", res.UnitID, want[res.UnitID], res.ResolvedTerritory)
		}
	}
}

// Regression: a direct, unconvoyed head-to-head swap must bounce both units
// even though each destination forms its own singleton group.
func TestResolveMovement_DirectSwapBounces(t *testing.T) {
	rules := StandardRules()
	state := gameWith(NationFrance, Army, "bur", &UnitRecord{OwnerID: NationGermany, UnitType: Army, TerritoryID: "mun"})

	burUnit := state.UnitAt("bur").ID
	munUnit := state.UnitAt("mun").ID
	chosen := map[string]SemanticResult{
		burUnit: {PlayerID: NationFrance, Valid: true, Order: MoveOrder{From: "bur", To: "mun"}},
		munUnit: {PlayerID: NationGermany, Valid: true, Order: MoveOrder{From: "mun", To: "bur"}},
	}

	results, _ := ResolveMovement(chosen, nil, state, rules)

	for _, res := range results {
		if res.Outcome != MoveBounced {
			t.Errorf("unit %s: expected MOVE_BOUNCED, got %v", res.UnitID, res.Outcome)
		}
		if res.ResolvedTerritory != res.OriginTerritory {
			t.Errorf("unit %s: should remain at %s, got %s", res.UnitID, res.OriginTerritory, res.ResolvedTerritory)
		}
	}
}
