// Package variant loads read-only map geometry and starting-position data
// for one Diplomacy variant from the JSON files under a variant root (see
// spec's "world/" and "start/" layout), falling back to the embedded
// standard seven-power map when no variant root is configured.
package variant

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hlyeh/diplomacy-resolver/internal/directerr"
	"github.com/hlyeh/diplomacy-resolver/pkg/diplomacy"
)

// territoryFile mirrors one entry of world/territories.json.
type territoryFile struct {
	DisplayName    string   `json:"display_name"`
	Type           string   `json:"type"`
	IsSupplyCenter bool     `json:"is_supply_center"`
	HasCoast       bool     `json:"has_coast"`
	HomeCountry    string   `json:"home_country"`
	Coasts         []string `json:"coasts"`
}

// edgeFile mirrors one entry of world/edges.json.
type edgeFile struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
}

// nationFile mirrors one entry of world/nations.json.
type nationFile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// startingUnitFile mirrors one entry of start/starting_units.json.
type startingUnitFile struct {
	Owner    string `json:"owner"`
	UnitType string `json:"unit_type"`
	At       string `json:"at"`
}

// Variant bundles the immutable geometry with the data needed to build a
// game's opening GameState.
type Variant struct {
	Name            string
	Rules           *diplomacy.Rules
	StartingUnits   []startingUnitFile
	StartingOwners  map[string]string
}

// Load reads a variant's data files from root. An empty root requests the
// embedded standard variant instead of touching disk.
func Load(root string) (*Variant, error) {
	if root == "" {
		return standardVariant(), nil
	}

	territories, err := readTerritories(filepath.Join(root, "world", "territories.json"))
	if err != nil {
		return nil, err
	}
	edges, err := readEdges(filepath.Join(root, "world", "edges.json"))
	if err != nil {
		return nil, err
	}
	nations, err := readNations(filepath.Join(root, "world", "nations.json"))
	if err != nil {
		return nil, err
	}
	units, err := readStartingUnits(filepath.Join(root, "start", "starting_units.json"))
	if err != nil {
		return nil, err
	}
	owners, err := readStartingOwnerships(filepath.Join(root, "start", "starting_ownerships.json"))
	if err != nil {
		return nil, err
	}

	rules := diplomacy.NewRules(territories, edges, nations)
	return &Variant{Name: filepath.Base(root), Rules: rules, StartingUnits: units, StartingOwners: owners}, nil
}

func standardVariant() *Variant {
	rules := diplomacy.StandardRules()
	var units []startingUnitFile
	for _, su := range diplomacy.StandardStartingUnits() {
		units = append(units, startingUnitFile{Owner: su.Owner, UnitType: su.UnitType.String(), At: su.At})
	}
	owners := make(map[string]string)
	for terr, nation := range diplomacy.StandardStartingOwnerships() {
		owners[terr] = nation
	}
	return &Variant{Name: "standard", Rules: rules, StartingUnits: units, StartingOwners: owners}
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return directerr.ErrMissingVariantFile
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return directerr.ErrInvalidVariantData
	}
	return nil
}

func readTerritories(path string) ([]*diplomacy.Region, error) {
	var raw map[string]territoryFile
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}
	regions := make([]*diplomacy.Region, 0, len(raw))
	for id, t := range raw {
		var typ diplomacy.RegionType
		switch t.Type {
		case "land":
			typ = diplomacy.Land
		case "sea":
			typ = diplomacy.Sea
		case "coast":
			typ = diplomacy.CoastalLand
		default:
			return nil, directerr.ErrInvalidVariantData
		}
		regions = append(regions, &diplomacy.Region{
			ID:           id,
			DisplayName:  t.DisplayName,
			Type:         typ,
			SupplyCenter: t.IsSupplyCenter,
			HomeOf:       t.HomeCountry,
			Coasts:       t.Coasts,
		})
	}
	return regions, nil
}

func readEdges(path string) ([]diplomacy.Edge, error) {
	var raw []edgeFile
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}
	edges := make([]diplomacy.Edge, 0, len(raw))
	for _, e := range raw {
		var mode diplomacy.EdgeMode
		switch e.Mode {
		case "land":
			mode = diplomacy.EdgeLand
		case "sea":
			mode = diplomacy.EdgeSea
		case "both":
			mode = diplomacy.EdgeBoth
		default:
			return nil, directerr.ErrInvalidVariantData
		}
		edges = append(edges, diplomacy.Edge{From: e.From, To: e.To, Mode: mode})
	}
	return edges, nil
}

func readNations(path string) ([]string, error) {
	var raw []nationFile
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, n := range raw {
		ids = append(ids, n.ID)
	}
	return ids, nil
}

func readStartingUnits(path string) ([]startingUnitFile, error) {
	var raw []startingUnitFile
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func readStartingOwnerships(path string) (map[string]string, error) {
	var raw map[string]string
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// NewGameState builds the opening GameState for this variant.
func (v *Variant) NewGameState(gameID string) (*diplomacy.GameState, error) {
	if v.Name == "standard" {
		return diplomacy.NewStandardGameState(gameID), nil
	}

	players := make(map[string]*diplomacy.Nation, len(v.Rules.Nations()))
	for _, nation := range v.Rules.Nations() {
		players[nation] = &diplomacy.Nation{ID: nation, Status: diplomacy.NationActive}
	}

	counters := make(map[string]int)
	units := make(map[string]*diplomacy.UnitRecord)
	for _, su := range v.StartingUnits {
		unitType, err := diplomacy.ParseUnitType(su.UnitType)
		if err != nil {
			return nil, directerr.ErrInvalidVariantData
		}
		counters[su.Owner+"_"+su.UnitType]++
		id := diplomacy.BuildUnitID(su.Owner, unitType, counters[su.Owner+"_"+su.UnitType])
		units[id] = &diplomacy.UnitRecord{ID: id, UnitType: unitType, OwnerID: su.Owner, TerritoryID: su.At}
	}

	owners := make(map[string]string, len(v.StartingOwners))
	for terr, nation := range v.StartingOwners {
		owners[terr] = nation
	}

	return &diplomacy.GameState{
		Meta: diplomacy.GameMeta{
			GameID:   gameID,
			Variant:  v.Name,
			TurnCode: diplomacy.InitialTurnCode.String(),
			Status:   string(diplomacy.StatusActive),
		},
		Players:        players,
		Units:          units,
		TerritoryOwner: owners,
		RawOrders:      make(map[string][]string),
	}, nil
}
