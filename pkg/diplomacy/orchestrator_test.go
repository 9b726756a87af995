package diplomacy

import (
	"testing"

	"github.com/go-test/deep"
)

func newGame(turnCode string, units map[string]*UnitRecord, owners map[NodeID]string) *LoadedState {
	if owners == nil {
		owners = make(map[NodeID]string)
	}
	game := &GameState{
		Meta:           GameMeta{GameID: "g", Variant: "standard", TurnCode: turnCode, Status: string(StatusActive)},
		Players:        make(map[string]*Nation),
		Units:          units,
		TerritoryOwner: owners,
		RawOrders:      make(map[string][]string),
	}
	return Load(game)
}

func outcomesByUnit(report *PhaseResolutionReport) map[string]OutcomeType {
	out := make(map[string]OutcomeType, len(report.ResolutionResults))
	for _, r := range report.ResolutionResults {
		out[r.UnitID] = r.Outcome
	}
	return out
}

// Trivial move: a single unarmed move from spec.md §8 scenario 1.
func TestProcessPhase_TrivialMove(t *testing.T) {
	rules := StandardRules()
	u1 := BuildUnitID(NationEngland, Army, 1)
	state := newGame("1901-S-M", map[string]*UnitRecord{
		u1: {ID: u1, UnitType: Army, OwnerID: NationEngland, TerritoryID: "lon"},
	}, nil)

	report, next, err := ProcessPhase(state, rules, map[string][]string{
		NationEngland: {"lon-wal"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	if len(report.ResolutionResults) != 1 {
		t.Fatalf("expected 1 resolution result, got %d", len(report.ResolutionResults))
	}
	res := report.ResolutionResults[0]
	if res.Outcome != MoveSuccess || res.ResolvedTerritory != "wal" {
		t.Errorf("expected MOVE_SUCCESS to wal, got %v at %s", res.Outcome, res.ResolvedTerritory)
	}
	if next.Meta.TurnCode != "1901-F-M" {
		t.Errorf("expected next turn 1901-F-M (retreat skipped), got %s", next.Meta.TurnCode)
	}
	if next.Units[u1].TerritoryID != "wal" {
		t.Errorf("expected unit relocated to wal, got %s", next.Units[u1].TerritoryID)
	}
}

// Head-to-head bounce: spec.md §8 scenario 2.
func TestProcessPhase_HeadToHeadBounce(t *testing.T) {
	rules := StandardRules()
	u1 := BuildUnitID(NationEngland, Army, 1)
	u2 := BuildUnitID(NationFrance, Army, 1)
	state := newGame("1901-S-M", map[string]*UnitRecord{
		u1: {ID: u1, UnitType: Army, OwnerID: NationEngland, TerritoryID: "bel"},
		u2: {ID: u2, UnitType: Army, OwnerID: NationFrance, TerritoryID: "pic"},
	}, nil)

	report, next, err := ProcessPhase(state, rules, map[string][]string{
		NationEngland: {"bel-pic"},
		NationFrance:  {"pic-bel"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	got := outcomesByUnit(report)
	if got[u1] != MoveBounced || got[u2] != MoveBounced {
		t.Errorf("expected both bounced, got %v", got)
	}
	if report.HasDislodged() {
		t.Error("no unit should be dislodged")
	}
	if next.Meta.TurnCode != "1901-F-M" {
		t.Errorf("expected retreat phase skipped, got %s", next.Meta.TurnCode)
	}
}

// Support-cut cascade: spec.md §8 scenario 3, continued into the retreat
// standoff of scenario 4.
func TestProcessPhase_SupportCutCascadeAndRetreatStandoff(t *testing.T) {
	rules := StandardRules()
	p1 := "p1"
	p2 := "p2"
	u1 := BuildUnitID(p1, Army, 1) // bel
	u4 := BuildUnitID(p1, Army, 2) // bur
	u5 := BuildUnitID(p1, Army, 3) // mun
	u2 := BuildUnitID(p2, Army, 1) // ruh
	u3 := BuildUnitID(p2, Army, 2) // pic
	u6 := BuildUnitID(p2, Fleet, 1) // nth

	units := map[string]*UnitRecord{
		u1: {ID: u1, UnitType: Army, OwnerID: p1, TerritoryID: "bel"},
		u4: {ID: u4, UnitType: Army, OwnerID: p1, TerritoryID: "bur"},
		u5: {ID: u5, UnitType: Army, OwnerID: p1, TerritoryID: "mun"},
		u2: {ID: u2, UnitType: Army, OwnerID: p2, TerritoryID: "ruh"},
		u3: {ID: u3, UnitType: Army, OwnerID: p2, TerritoryID: "pic"},
		u6: {ID: u6, UnitType: Fleet, OwnerID: p2, TerritoryID: "nth"},
	}
	state := newGame("1901-S-M", units, nil)

	report, next, err := ProcessPhase(state, rules, map[string][]string{
		p2: {"pic-bel", "ruh hold", "nth s pic-bel"},
		p1: {"bur-ruh", "bel hold", "mun s bur-ruh"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	got := outcomesByUnit(report)
	if got[u1] != Dislodged {
		t.Errorf("u1 (bel): expected DISLODGED, got %v", got[u1])
	}
	if got[u2] != Dislodged {
		t.Errorf("u2 (ruh): expected DISLODGED, got %v", got[u2])
	}
	if next.Meta.TurnCode != "1901-S-R" {
		t.Errorf("expected next turn 1901-S-R, got %s", next.Meta.TurnCode)
	}
	if diff := deep.Equal(next.Units, units); diff != nil {
		t.Errorf("units must not be mutated while a Movement report has dislodgements: %v", diff)
	}

	// Scenario 4: both dislodged units retreat to the same region (hol) and
	// both fail, destroyed.
	retreatState := Load(next)
	retreatState.PendingReport = report

	retreatReport, finalState, err := ProcessPhase(retreatState, rules, map[string][]string{
		p1: {"bel-hol"},
		p2: {"ruh-hol"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase (retreat): %v", err)
	}
	gotRetreat := outcomesByUnit(retreatReport)
	if gotRetreat[u1] != RetreatFailed || gotRetreat[u2] != RetreatFailed {
		t.Errorf("expected both retreats to fail on standoff, got %v", gotRetreat)
	}
	if _, alive := finalState.Units[u1]; alive {
		t.Error("u1 should have been destroyed")
	}
	if _, alive := finalState.Units[u2]; alive {
		t.Error("u2 should have been destroyed")
	}
	if finalState.Meta.TurnCode != "1901-F-M" {
		t.Errorf("expected next turn 1901-F-M, got %s", finalState.Meta.TurnCode)
	}
	if finalState.Units[u3].TerritoryID != "bel" {
		t.Errorf("expected u3 (the successful attacker) to end at bel, got %s", finalState.Units[u3].TerritoryID)
	}
	if finalState.Units[u4].TerritoryID != "ruh" {
		t.Errorf("expected u4 (the successful attacker) to end at ruh, got %s", finalState.Units[u4].TerritoryID)
	}
}

// Convoy disrupted by dislodgement of the convoying fleet: spec.md §8
// scenario 5.
func TestProcessPhase_ConvoyDisruptedByDislodgement(t *testing.T) {
	rules := StandardRules()
	lon := BuildUnitID(NationEngland, Army, 1)
	engFleet := BuildUnitID(NationEngland, Fleet, 1)
	bre := BuildUnitID(NationFrance, Fleet, 1)
	pic := BuildUnitID(NationFrance, Army, 1)
	mao := BuildUnitID(NationFrance, Fleet, 2)
	bel := BuildUnitID(NationFrance, Army, 2)

	units := map[string]*UnitRecord{
		lon:      {ID: lon, UnitType: Army, OwnerID: NationEngland, TerritoryID: "lon"},
		engFleet: {ID: engFleet, UnitType: Fleet, OwnerID: NationEngland, TerritoryID: "eng"},
		bre:      {ID: bre, UnitType: Fleet, OwnerID: NationFrance, TerritoryID: "bre"},
		pic:      {ID: pic, UnitType: Army, OwnerID: NationFrance, TerritoryID: "pic"},
		mao:      {ID: mao, UnitType: Fleet, OwnerID: NationFrance, TerritoryID: "mao"},
		bel:      {ID: bel, UnitType: Army, OwnerID: NationFrance, TerritoryID: "bel"},
	}
	state := newGame("1901-S-M", units, nil)

	report, _, err := ProcessPhase(state, rules, map[string][]string{
		NationEngland: {"lon-bel", "eng c lon-bel"},
		NationFrance:  {"bre-eng", "pic hold", "mao s bre-eng", "bel s pic h"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	got := outcomesByUnit(report)
	if got[lon] != MoveNoConvoy {
		t.Errorf("lon: expected MOVE_NO_CONVOY, got %v", got[lon])
	}
	if got[engFleet] != Dislodged {
		t.Errorf("eng fleet: expected DISLODGED, got %v", got[engFleet])
	}
	if got[bre] != MoveSuccess {
		t.Errorf("bre: expected MOVE_SUCCESS, got %v", got[bre])
	}
	if got[pic] != HoldSuccess {
		t.Errorf("pic: expected HOLD_SUCCESS, got %v", got[pic])
	}
	if got[bel] != SupportSuccess {
		t.Errorf("bel: expected SUPPORT_SUCCESS (not cut), got %v", got[bel])
	}
}

// Winter adjustment build, and a duplicate build recorded against the
// first: spec.md §8 scenario 6.
func TestProcessPhase_WinterBuildAndDuplicate(t *testing.T) {
	rules := StandardRules()
	a1 := BuildUnitID(NationGermany, Army, 1)
	a2 := BuildUnitID(NationGermany, Army, 2)
	f1 := BuildUnitID(NationGermany, Fleet, 1)
	units := map[string]*UnitRecord{
		a1: {ID: a1, UnitType: Army, OwnerID: NationGermany, TerritoryID: "mun"},
		a2: {ID: a2, UnitType: Army, OwnerID: NationGermany, TerritoryID: "kie"},
		f1: {ID: f1, UnitType: Fleet, OwnerID: NationGermany, TerritoryID: "bal"},
	}
	owners := map[NodeID]string{
		"mun": NationGermany, "kie": NationGermany, "ber": NationGermany, "hol": NationGermany,
	}
	state := newGame("1901-W-A", units, owners)

	report, next, err := ProcessPhase(state, rules, map[string][]string{
		NationGermany: {"build army ber", "build fleet ber"},
	})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	if len(report.ResolutionResults) != 1 {
		t.Fatalf("expected 1 result (second build folded in as duplicate), got %d", len(report.ResolutionResults))
	}
	res := report.ResolutionResults[0]
	if res.Outcome != BuildSuccess {
		t.Errorf("expected BUILD_SUCCESS, got %v", res.Outcome)
	}
	if len(res.DuplicateOrders) != 1 {
		t.Errorf("expected 1 duplicate order recorded, got %v", res.DuplicateOrders)
	}
	wantID := BuildUnitID(NationGermany, Army, 3)
	if _, ok := next.Units[wantID]; !ok {
		t.Errorf("expected new unit %s in next state", wantID)
	}
	if next.Meta.TurnCode != "1902-S-M" {
		t.Errorf("expected next turn 1902-S-M, got %s", next.Meta.TurnCode)
	}
}

// A nation that leaves a disband shortfall unordered falls back to civil
// disorder: the unit furthest from home is auto-disbanded.
func TestProcessPhase_CivilDisorderDisbandsFurthestUnit(t *testing.T) {
	rules := StandardRules()
	home := BuildUnitID(NationFrance, Army, 1)
	far := BuildUnitID(NationFrance, Army, 2)
	units := map[string]*UnitRecord{
		home: {ID: home, UnitType: Army, OwnerID: NationFrance, TerritoryID: "par"},
		far:  {ID: far, UnitType: Army, OwnerID: NationFrance, TerritoryID: "war"},
	}
	owners := map[NodeID]string{"par": NationFrance}
	state := newGame("1901-W-A", units, owners)

	report, next, err := ProcessPhase(state, rules, map[string][]string{})
	if err != nil {
		t.Fatalf("ProcessPhase: %v", err)
	}
	got := outcomesByUnit(report)
	if got[far] != DisbandSuccess {
		t.Errorf("expected the unit far from home (war) to be civil-disordered, got %v", got)
	}
	if _, alive := next.Units[far]; alive {
		t.Error("far unit should have been removed")
	}
	if _, alive := next.Units[home]; !alive {
		t.Error("home unit should survive")
	}
}

func TestSoloVictor(t *testing.T) {
	owners := make(map[NodeID]string)
	rules := StandardRules()
	regions := rules.Regions()
	scCount := 0
	for _, id := range regions {
		if !rules.IsSupplyCenter(id) {
			continue
		}
		owners[id] = NationRussia
		scCount++
		if scCount >= SoloVictoryThreshold {
			break
		}
	}
	winner, ok := SoloVictor(owners)
	if !ok || winner != NationRussia {
		t.Errorf("expected russia to win solo, got %s (%v)", winner, ok)
	}

	nobody, ok := SoloVictor(map[NodeID]string{"par": NationFrance})
	if ok {
		t.Errorf("expected no solo victor with 1 center, got %s", nobody)
	}
}

func TestTurnCode_NextSequenceMatchesSpec(t *testing.T) {
	var codes []string
	tc := InitialTurnCode
	for i := 0; i < 6; i++ {
		codes = append(codes, tc.String())
		tc = tc.Next()
	}
	want := []string{"1901-S-M", "1901-S-R", "1901-F-M", "1901-F-R", "1901-W-A", "1902-S-M"}
	if diff := deep.Equal(codes, want); diff != nil {
		t.Errorf("turn code sequence mismatch: %v", diff)
	}
}
