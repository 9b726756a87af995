package diplomacy

import "fmt"

// ValidateSemantic checks one parsed order against current state and rules
// (C3). syn must already be syntactically valid; a syntactically invalid
// result is returned unchanged as a failing SemanticResult rather than
// panicking.
func ValidateSemantic(playerID string, syn SyntaxResult, rules *Rules, state *LoadedState) SemanticResult {
	result := SemanticResult{
		PlayerID:   playerID,
		Raw:        syn.Raw,
		Normalized: syn.Normalized,
	}

	if !syn.Valid || syn.Order == nil {
		result.Valid = false
		result.Errors = []string{"cannot run semantic validation: syntax invalid"}
		return result
	}
	result.Order = syn.Order

	var err error
	switch o := syn.Order.(type) {
	case HoldOrder:
		err = checkHold(playerID, o, rules, state)
	case MoveOrder:
		err = checkMove(playerID, o, rules, state)
	case SupportHoldOrder:
		err = checkSupportHold(playerID, o, rules, state)
	case SupportMoveOrder:
		err = checkSupportMove(playerID, o, rules, state)
	case ConvoyOrder:
		err = checkConvoy(playerID, o, rules, state)
	case BuildOrder:
		err = checkBuild(playerID, o, rules, state)
	case DisbandOrder:
		err = checkDisband(playerID, o, rules, state)
	case RetreatOrder:
		err = checkRetreat(playerID, o, rules, state)
	default:
		err = fmt.Errorf("unhandled order type %T", syn.Order)
	}

	if err != nil {
		result.Valid = false
		result.Errors = []string{err.Error()}
		return result
	}
	result.Valid = true
	return result
}

func checkTerritoryExists(rules *Rules, id NodeID) error {
	if !rules.Exists(id) {
		return fmt.Errorf("%s is not a valid territory", id)
	}
	return nil
}

func checkUnitExists(state *LoadedState, origin NodeID) error {
	if _, ok := state.TerritoryToUnit[origin]; !ok {
		return fmt.Errorf("unit does not exist in %s", origin)
	}
	return nil
}

func checkUnitOwnership(state *LoadedState, playerID string, origin NodeID) error {
	unitID := state.TerritoryToUnit[origin]
	u := state.Game.Units[unitID]
	if u == nil || u.OwnerID != playerID {
		return fmt.Errorf("unit in %s does not belong to %s", origin, playerID)
	}
	return nil
}

// checkAdjacency requires a direct edge traversable by the unit at origin,
// or, when allowConvoy is set and the unit is an army, a coastal target
// reachable by a continuous sea path.
func checkAdjacency(rules *Rules, state *LoadedState, origin, target NodeID, allowConvoy bool) error {
	if err := checkTerritoryExists(rules, origin); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, target); err != nil {
		return err
	}
	unitID := state.TerritoryToUnit[origin]
	u := state.Game.Units[unitID]
	if u == nil {
		return fmt.Errorf("unit does not exist in %s", origin)
	}
	fleet := u.UnitType == Fleet

	if rules.CanTraverse(origin, target, fleet) {
		return nil
	}
	if allowConvoy && !fleet && rules.TypeOf(target) == CoastalLand && rules.SeaPath(origin, target) {
		return nil
	}
	if allowConvoy && !fleet {
		return fmt.Errorf("army at %s cannot reach %s: no continuous sea route for convoy", origin, target)
	}
	return fmt.Errorf("%s at %s cannot reach %s (requires %s-appropriate edge)", u.UnitType, origin, target, u.UnitType)
}

func checkHold(playerID string, o HoldOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.At); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.At); err != nil {
		return err
	}
	return checkUnitOwnership(state, playerID, o.At)
}

func checkMove(playerID string, o MoveOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.From); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, o.To); err != nil {
		return err
	}
	if err := checkUnitOwnership(state, playerID, o.From); err != nil {
		return err
	}
	return checkAdjacency(rules, state, o.From, o.To, true)
}

func checkSupportHold(playerID string, o SupportHoldOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.At); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, o.SupportedAt); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.At); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.SupportedAt); err != nil {
		return err
	}
	if err := checkAdjacency(rules, state, o.At, o.SupportedAt, false); err != nil {
		return err
	}
	return checkUnitOwnership(state, playerID, o.At)
}

func checkSupportMove(playerID string, o SupportMoveOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.At); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, o.SupportedFrom); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, o.SupportedTo); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.At); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.SupportedFrom); err != nil {
		return err
	}
	if err := checkUnitOwnership(state, playerID, o.At); err != nil {
		return err
	}
	if err := checkAdjacency(rules, state, o.At, o.SupportedTo, false); err != nil {
		return err
	}
	return checkAdjacency(rules, state, o.SupportedFrom, o.SupportedTo, false)
}

func checkConvoy(playerID string, o ConvoyOrder, rules *Rules, state *LoadedState) error {
	for _, terr := range []NodeID{o.At, o.ArmyFrom, o.ArmyTo} {
		if err := checkTerritoryExists(rules, terr); err != nil {
			return err
		}
	}
	if err := checkUnitOwnership(state, playerID, o.At); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.At); err != nil {
		return err
	}
	fleet := state.Game.Units[state.TerritoryToUnit[o.At]]
	if fleet.UnitType != Fleet {
		return fmt.Errorf("no fleet at %s to convoy", o.At)
	}
	if err := checkUnitExists(state, o.ArmyFrom); err != nil {
		return err
	}
	army := state.Game.Units[state.TerritoryToUnit[o.ArmyFrom]]
	if army.UnitType != Army {
		return fmt.Errorf("no army at %s to convoy", o.ArmyFrom)
	}
	if !rules.SeaPath(o.ArmyFrom, o.ArmyTo) {
		return fmt.Errorf("no valid sea path between %s and %s", o.ArmyFrom, o.ArmyTo)
	}
	return nil
}

func checkBuild(playerID string, o BuildOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.At); err != nil {
		return err
	}
	if !rules.IsHomeOf(playerID, o.At) {
		return fmt.Errorf("%s is not a home center of %s", o.At, playerID)
	}
	if state.Game.TerritoryOwner[rules.ParentOf(o.At)] != playerID {
		return fmt.Errorf("%s does not belong to %s", o.At, playerID)
	}
	if _, occupied := state.TerritoryToUnit[o.At]; occupied {
		return fmt.Errorf("cannot build in %s: territory is occupied", o.At)
	}
	unitCount := len(state.UnitsOf(playerID))
	supplyCount := state.SupplyCenterCount(playerID)
	if unitCount >= supplyCount {
		return fmt.Errorf("%s does not have enough supply centers to build a unit", playerID)
	}
	if o.UnitType == Fleet && rules.TypeOf(o.At) == Land {
		return fmt.Errorf("fleets can only be built on coasts")
	}
	return nil
}

func checkDisband(playerID string, o DisbandOrder, rules *Rules, state *LoadedState) error {
	if err := checkTerritoryExists(rules, o.At); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.At); err != nil {
		return err
	}
	u := state.Game.Units[state.TerritoryToUnit[o.At]]
	if u.UnitType != o.UnitType {
		return fmt.Errorf("no %s at %s", o.UnitType, o.At)
	}
	return checkUnitOwnership(state, playerID, o.At)
}

func checkRetreat(playerID string, o RetreatOrder, rules *Rules, state *LoadedState) error {
	dislodgement, dislodged := state.IsDislodged(o.From)
	if !dislodged {
		return fmt.Errorf("no dislodged unit at %s", o.From)
	}
	if err := checkTerritoryExists(rules, o.From); err != nil {
		return err
	}
	if err := checkUnitExists(state, o.From); err != nil {
		return err
	}
	if err := checkUnitOwnership(state, playerID, o.From); err != nil {
		return err
	}
	if err := checkTerritoryExists(rules, o.To); err != nil {
		return err
	}
	if err := checkAdjacency(rules, state, o.From, o.To, false); err != nil {
		return err
	}
	if _, occupied := state.TerritoryToUnit[o.To]; occupied {
		return fmt.Errorf("%s is occupied", o.To)
	}
	if state.IsStandoffTile(o.To) {
		return fmt.Errorf("%s was a standoff this turn and cannot be retreated into", o.To)
	}
	if state.PendingReport != nil && dislodgement.DislodgedByID != "" {
		if attacker, ok := state.PendingReport.ResultFor(dislodgement.DislodgedByID); ok {
			if o.To == attacker.OriginTerritory {
				return fmt.Errorf("%s cannot retreat to %s: it is the attacker's origin", o.From, o.To)
			}
		}
	}
	return nil
}
