package diplomacy

import "fmt"

// UnitType represents the type of a military unit.
type UnitType int

const (
	Army UnitType = iota
	Fleet
)

func (u UnitType) String() string {
	if u == Army {
		return "army"
	}
	return "fleet"
}

// ParseUnitType parses the lowercase wire form ("army"/"fleet") of a unit type.
func ParseUnitType(s string) (UnitType, error) {
	switch s {
	case "army":
		return Army, nil
	case "fleet":
		return Fleet, nil
	default:
		return 0, fmt.Errorf("unknown unit type %q", s)
	}
}

// MarshalJSON renders a UnitType as its wire string.
func (u UnitType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON parses a UnitType from its wire string.
func (u *UnitType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseUnitType(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// UnitRecord is the persisted representation of one unit: an army or fleet
// belonging to a nation, occupying one node. Its id has the stable shape
// "<owner>_<type>_<counter>" and is never reused within a game.
type UnitRecord struct {
	ID          string   `json:"id"`
	UnitType    UnitType `json:"unit_type"`
	OwnerID     string   `json:"owner_id"`
	TerritoryID NodeID   `json:"territory_id"`
}

// BuildUnitID synthesizes a unit id from its owner, type, and counter.
func BuildUnitID(owner string, unitType UnitType, counter int) string {
	return fmt.Sprintf("%s_%s_%d", owner, unitType.String(), counter)
}

// counterKey is the (owner, type) key used to index monotonic unit counters.
func counterKey(owner string, unitType UnitType) string {
	return owner + "_" + unitType.String()
}
