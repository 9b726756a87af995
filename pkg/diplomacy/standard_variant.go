package diplomacy

import "sync"

// Nation ids for the standard seven-power variant.
const (
	NationAustria = "austria"
	NationEngland = "england"
	NationFrance  = "france"
	NationGermany = "germany"
	NationItaly   = "italy"
	NationRussia  = "russia"
	NationTurkey  = "turkey"
)

var standardNations = []string{
	NationAustria, NationEngland, NationFrance, NationGermany,
	NationItaly, NationRussia, NationTurkey,
}

var (
	standardRulesOnce sync.Once
	standardRulesInst *Rules
)

// StandardRules returns the classic 75-region, seven-power map. It is built
// once and cached; callers must not mutate anything reachable from it.
func StandardRules() *Rules {
	standardRulesOnce.Do(func() {
		standardRulesInst = buildStandardRules()
	})
	return standardRulesInst
}

func buildStandardRules() *Rules {
	var regions []*Region
	var edges []Edge

	region := func(id, name string, typ RegionType, sc bool, home string, coasts ...NodeID) {
		regions = append(regions, &Region{
			ID:           id,
			DisplayName:  name,
			Type:         typ,
			SupplyCenter: sc,
			HomeOf:       home,
			Coasts:       coasts,
		})
	}
	edge := func(from, to NodeID, mode EdgeMode) {
		edges = append(edges, Edge{From: from, To: to, Mode: mode})
	}
	armyEdge := func(from, to NodeID) { edge(from, to, EdgeLand) }
	fleetEdge := func(from, to NodeID) { edge(from, to, EdgeSea) }
	bothEdge := func(from, to NodeID) { edge(from, to, EdgeBoth) }

	// Inland provinces (14).
	region("boh", "Bohemia", Land, false, "")
	region("bud", "Budapest", Land, true, NationAustria)
	region("bur", "Burgundy", Land, false, "")
	region("gal", "Galicia", Land, false, "")
	region("mos", "Moscow", Land, true, NationRussia)
	region("mun", "Munich", Land, true, NationGermany)
	region("par", "Paris", Land, true, NationFrance)
	region("ruh", "Ruhr", Land, false, "")
	region("ser", "Serbia", Land, true, "")
	region("sil", "Silesia", Land, false, "")
	region("tyr", "Tyrolia", Land, false, "")
	region("ukr", "Ukraine", Land, false, "")
	region("vie", "Vienna", Land, true, NationAustria)
	region("war", "Warsaw", Land, true, NationRussia)

	// Coastal provinces without split coasts (39).
	region("alb", "Albania", CoastalLand, false, "")
	region("ank", "Ankara", CoastalLand, true, NationTurkey)
	region("apu", "Apulia", CoastalLand, false, "")
	region("arm", "Armenia", CoastalLand, false, "")
	region("bel", "Belgium", CoastalLand, true, "")
	region("ber", "Berlin", CoastalLand, true, NationGermany)
	region("bre", "Brest", CoastalLand, true, NationFrance)
	region("cly", "Clyde", CoastalLand, false, "")
	region("con", "Constantinople", CoastalLand, true, NationTurkey)
	region("den", "Denmark", CoastalLand, true, "")
	region("edi", "Edinburgh", CoastalLand, true, NationEngland)
	region("fin", "Finland", CoastalLand, false, "")
	region("gas", "Gascony", CoastalLand, false, "")
	region("gre", "Greece", CoastalLand, true, "")
	region("hol", "Holland", CoastalLand, true, "")
	region("kie", "Kiel", CoastalLand, true, NationGermany)
	region("lon", "London", CoastalLand, true, NationEngland)
	region("lvn", "Livonia", CoastalLand, false, "")
	region("lvp", "Liverpool", CoastalLand, true, NationEngland)
	region("mar", "Marseilles", CoastalLand, true, NationFrance)
	region("naf", "North Africa", CoastalLand, false, "")
	region("nap", "Naples", CoastalLand, true, NationItaly)
	region("nwy", "Norway", CoastalLand, true, "")
	region("pic", "Picardy", CoastalLand, false, "")
	region("pie", "Piedmont", CoastalLand, false, "")
	region("por", "Portugal", CoastalLand, true, "")
	region("pru", "Prussia", CoastalLand, false, "")
	region("rom", "Rome", CoastalLand, true, NationItaly)
	region("rum", "Rumania", CoastalLand, true, "")
	region("sev", "Sevastopol", CoastalLand, true, NationRussia)
	region("smy", "Smyrna", CoastalLand, true, NationTurkey)
	region("swe", "Sweden", CoastalLand, true, "")
	region("syr", "Syria", CoastalLand, false, "")
	region("tri", "Trieste", CoastalLand, true, NationAustria)
	region("tun", "Tunisia", CoastalLand, true, "")
	region("tus", "Tuscany", CoastalLand, false, "")
	region("ven", "Venice", CoastalLand, true, NationItaly)
	region("wal", "Wales", CoastalLand, false, "")
	region("yor", "Yorkshire", CoastalLand, false, "")

	// Split-coast provinces (3).
	region("bul", "Bulgaria", CoastalLand, true, "", "bul_ec", "bul_sc")
	region("spa", "Spain", CoastalLand, true, "", "spa_nc", "spa_sc")
	region("stp", "St. Petersburg", CoastalLand, true, NationRussia, "stp_nc", "stp_sc")

	// Sea provinces (19).
	region("adr", "Adriatic Sea", Sea, false, "")
	region("aeg", "Aegean Sea", Sea, false, "")
	region("bal", "Baltic Sea", Sea, false, "")
	region("bar", "Barents Sea", Sea, false, "")
	region("bla", "Black Sea", Sea, false, "")
	region("bot", "Gulf of Bothnia", Sea, false, "")
	region("eas", "Eastern Mediterranean", Sea, false, "")
	region("eng", "English Channel", Sea, false, "")
	region("gol", "Gulf of Lyon", Sea, false, "")
	region("hel", "Heligoland Bight", Sea, false, "")
	region("ion", "Ionian Sea", Sea, false, "")
	region("iri", "Irish Sea", Sea, false, "")
	region("mao", "Mid-Atlantic Ocean", Sea, false, "")
	region("nao", "North Atlantic Ocean", Sea, false, "")
	region("nrg", "Norwegian Sea", Sea, false, "")
	region("nth", "North Sea", Sea, false, "")
	region("ska", "Skagerrak", Sea, false, "")
	region("tys", "Tyrrhenian Sea", Sea, false, "")
	region("wes", "Western Mediterranean", Sea, false, "")

	// Sea-to-sea.
	fleetEdge("adr", "ion")
	fleetEdge("aeg", "eas")
	fleetEdge("aeg", "ion")
	fleetEdge("bal", "bot")
	fleetEdge("eng", "iri")
	fleetEdge("eng", "mao")
	fleetEdge("eng", "nth")
	fleetEdge("gol", "tys")
	fleetEdge("gol", "wes")
	fleetEdge("hel", "nth")
	fleetEdge("ion", "eas")
	fleetEdge("ion", "tys")
	fleetEdge("iri", "mao")
	fleetEdge("iri", "nao")
	fleetEdge("mao", "nao")
	fleetEdge("mao", "wes")
	fleetEdge("nao", "nrg")
	fleetEdge("nth", "nrg")
	fleetEdge("nth", "ska")
	fleetEdge("nrg", "bar")
	fleetEdge("tys", "wes")

	// Sea-to-coastal.
	fleetEdge("adr", "alb")
	fleetEdge("adr", "apu")
	fleetEdge("adr", "tri")
	fleetEdge("adr", "ven")

	fleetEdge("aeg", "bul_sc")
	fleetEdge("aeg", "con")
	fleetEdge("aeg", "gre")
	fleetEdge("aeg", "smy")

	fleetEdge("bal", "ber")
	fleetEdge("bal", "den")
	fleetEdge("bal", "kie")
	fleetEdge("bal", "lvn")
	fleetEdge("bal", "pru")
	fleetEdge("bal", "swe")

	fleetEdge("bar", "nwy")
	fleetEdge("bar", "stp_nc")

	fleetEdge("bla", "ank")
	fleetEdge("bla", "arm")
	fleetEdge("bla", "bul_ec")
	fleetEdge("bla", "con")
	fleetEdge("bla", "rum")
	fleetEdge("bla", "sev")

	fleetEdge("bot", "fin")
	fleetEdge("bot", "lvn")
	fleetEdge("bot", "stp_sc")
	fleetEdge("bot", "swe")

	fleetEdge("eas", "smy")
	fleetEdge("eas", "syr")

	fleetEdge("eng", "bel")
	fleetEdge("eng", "bre")
	fleetEdge("eng", "lon")
	fleetEdge("eng", "pic")
	fleetEdge("eng", "wal")

	fleetEdge("gol", "mar")
	fleetEdge("gol", "pie")
	fleetEdge("gol", "spa_sc")
	fleetEdge("gol", "tus")

	fleetEdge("hel", "den")
	fleetEdge("hel", "hol")
	fleetEdge("hel", "kie")

	fleetEdge("ion", "alb")
	fleetEdge("ion", "apu")
	fleetEdge("ion", "gre")
	fleetEdge("ion", "nap")
	fleetEdge("ion", "tun")

	fleetEdge("iri", "lvp")
	fleetEdge("iri", "wal")

	fleetEdge("mao", "bre")
	fleetEdge("mao", "gas")
	fleetEdge("mao", "naf")
	fleetEdge("mao", "por")
	fleetEdge("mao", "spa_nc")
	fleetEdge("mao", "spa_sc")

	fleetEdge("nao", "cly")
	fleetEdge("nao", "lvp")

	fleetEdge("nth", "bel")
	fleetEdge("nth", "den")
	fleetEdge("nth", "edi")
	fleetEdge("nth", "hol")
	fleetEdge("nth", "lon")
	fleetEdge("nth", "nwy")
	fleetEdge("nth", "yor")

	fleetEdge("nrg", "cly")
	fleetEdge("nrg", "edi")
	fleetEdge("nrg", "nwy")

	fleetEdge("ska", "den")
	fleetEdge("ska", "nwy")
	fleetEdge("ska", "swe")

	fleetEdge("tys", "nap")
	fleetEdge("tys", "rom")
	fleetEdge("tys", "tun")
	fleetEdge("tys", "tus")

	fleetEdge("wes", "naf")
	fleetEdge("wes", "spa_sc")
	fleetEdge("wes", "tun")

	// Inland-to-inland (army only).
	armyEdge("boh", "gal")
	armyEdge("boh", "mun")
	armyEdge("boh", "sil")
	armyEdge("boh", "tyr")
	armyEdge("boh", "vie")
	armyEdge("bud", "gal")
	armyEdge("bud", "vie")
	armyEdge("bur", "mun")
	armyEdge("bur", "par")
	armyEdge("bur", "ruh")
	armyEdge("gal", "sil")
	armyEdge("gal", "ukr")
	armyEdge("gal", "vie")
	armyEdge("gal", "war")
	armyEdge("mos", "ukr")
	armyEdge("mos", "war")
	armyEdge("mun", "ruh")
	armyEdge("mun", "sil")
	armyEdge("mun", "tyr")
	armyEdge("sil", "war")
	armyEdge("tyr", "vie")
	armyEdge("ukr", "war")

	// Inland-to-coastal (army only).
	armyEdge("bud", "rum")
	armyEdge("bud", "ser")
	armyEdge("bud", "tri")
	armyEdge("bur", "bel")
	armyEdge("bur", "gas")
	armyEdge("bur", "mar")
	armyEdge("bur", "pic")
	armyEdge("gal", "rum")
	armyEdge("gas", "mar")
	armyEdge("mos", "lvn")
	armyEdge("mos", "sev")
	armyEdge("mos", "stp")
	armyEdge("mun", "ber")
	armyEdge("mun", "kie")
	armyEdge("par", "bre")
	armyEdge("par", "gas")
	armyEdge("par", "pic")
	armyEdge("ruh", "bel")
	armyEdge("ruh", "hol")
	armyEdge("ruh", "kie")
	armyEdge("ser", "alb")
	armyEdge("ser", "bul")
	armyEdge("ser", "gre")
	armyEdge("ser", "rum")
	armyEdge("ser", "tri")
	armyEdge("sil", "ber")
	armyEdge("sil", "pru")
	armyEdge("tyr", "pie")
	armyEdge("tyr", "tri")
	armyEdge("tyr", "ven")
	armyEdge("ukr", "rum")
	armyEdge("ukr", "sev")
	armyEdge("vie", "tri")
	armyEdge("war", "lvn")
	armyEdge("war", "pru")

	// Coastal-to-coastal: both army and fleet.
	bothEdge("alb", "gre")
	bothEdge("alb", "tri")
	bothEdge("ank", "arm")
	bothEdge("ank", "con")
	bothEdge("apu", "nap")
	bothEdge("apu", "ven")
	bothEdge("bel", "hol")
	bothEdge("bel", "pic")
	bothEdge("ber", "kie")
	bothEdge("ber", "pru")
	bothEdge("bre", "gas")
	bothEdge("bre", "pic")
	bothEdge("cly", "edi")
	bothEdge("cly", "lvp")
	bothEdge("con", "smy")
	bothEdge("den", "kie")
	bothEdge("den", "swe")
	bothEdge("edi", "yor")
	bothEdge("fin", "swe")
	bothEdge("hol", "kie")
	bothEdge("lon", "wal")
	bothEdge("lon", "yor")
	bothEdge("lvp", "wal")
	bothEdge("mar", "pie")
	bothEdge("naf", "tun")
	bothEdge("nwy", "swe")
	bothEdge("pie", "tus")
	bothEdge("pru", "lvn")
	bothEdge("rom", "nap")
	bothEdge("rom", "tus")
	bothEdge("sev", "arm")
	bothEdge("sev", "rum")
	bothEdge("smy", "syr")
	bothEdge("tri", "ven")

	// Coastal-to-coastal, army only (land border, different seas).
	armyEdge("ank", "smy")
	armyEdge("apu", "rom")
	armyEdge("arm", "smy")
	armyEdge("arm", "syr")
	armyEdge("edi", "lvp")
	armyEdge("fin", "nwy")
	armyEdge("lvp", "yor")
	armyEdge("pie", "ven")
	armyEdge("rom", "ven")
	armyEdge("tus", "ven")
	armyEdge("wal", "yor")

	// Coastal-to-coastal, fleet only via a split coast (no shared land border).
	fleetEdge("con", "bul_ec")
	fleetEdge("con", "bul_sc")
	fleetEdge("gre", "bul_sc")
	fleetEdge("rum", "bul_ec")
	fleetEdge("gas", "spa_nc")
	fleetEdge("mar", "spa_sc")
	fleetEdge("por", "spa_nc")
	fleetEdge("por", "spa_sc")
	fleetEdge("fin", "stp_sc")
	fleetEdge("lvn", "stp_sc")
	fleetEdge("nwy", "stp_nc")

	// Coastal-to-coastal/split-coast, army only (land border, no shared sea).
	armyEdge("con", "bul")
	armyEdge("gre", "bul")
	armyEdge("rum", "bul")
	armyEdge("gas", "spa")
	armyEdge("mar", "spa")
	armyEdge("por", "spa")
	armyEdge("fin", "stp")
	armyEdge("lvn", "stp")
	armyEdge("nwy", "stp")

	return NewRules(regions, edges, standardNations)
}

// standardUnit is one entry of the 1901 Spring starting order of battle.
type standardUnit struct {
	Owner    string
	UnitType UnitType
	At       NodeID
}

// StandardStartingUnits returns the classic 1901 Spring deployment: three
// units for each power except Russia, which starts with four.
func StandardStartingUnits() []standardUnit {
	return []standardUnit{
		{NationAustria, Army, "vie"},
		{NationAustria, Army, "bud"},
		{NationAustria, Fleet, "tri"},

		{NationEngland, Fleet, "lon"},
		{NationEngland, Fleet, "edi"},
		{NationEngland, Army, "lvp"},

		{NationFrance, Army, "par"},
		{NationFrance, Army, "mar"},
		{NationFrance, Fleet, "bre"},

		{NationGermany, Army, "ber"},
		{NationGermany, Army, "mun"},
		{NationGermany, Fleet, "kie"},

		{NationItaly, Army, "rom"},
		{NationItaly, Army, "ven"},
		{NationItaly, Fleet, "nap"},

		{NationRussia, Army, "mos"},
		{NationRussia, Army, "war"},
		{NationRussia, Fleet, "sev"},
		{NationRussia, Fleet, "stp_sc"},

		{NationTurkey, Army, "con"},
		{NationTurkey, Army, "smy"},
		{NationTurkey, Fleet, "ank"},
	}
}

// StandardStartingOwnerships returns the 1901 Spring supply-center
// ownership map: each power's three or four home centers. The twelve
// neutral centers are unowned and have no entry in the map.
func StandardStartingOwnerships() map[NodeID]string {
	owners := map[NodeID]string{
		"vie": NationAustria, "bud": NationAustria, "tri": NationAustria,
		"lon": NationEngland, "edi": NationEngland, "lvp": NationEngland,
		"par": NationFrance, "mar": NationFrance, "bre": NationFrance,
		"ber": NationGermany, "mun": NationGermany, "kie": NationGermany,
		"rom": NationItaly, "ven": NationItaly, "nap": NationItaly,
		"mos": NationRussia, "war": NationRussia, "sev": NationRussia, "stp": NationRussia,
		"con": NationTurkey, "smy": NationTurkey, "ank": NationTurkey,
	}
	return owners
}

// standardNeutralCenters lists the twelve supply centers unowned at the
// start of 1901, for reference; no code in the module reads it.
var standardNeutralCenters = []NodeID{
	"bel", "hol", "den", "nwy", "swe", "spa",
	"por", "tun", "gre", "ser", "rum", "bul",
}

// NewStandardGameState builds the 1901 Spring starting GameState for the
// classic variant: every nation active, the opening deployment, and home
// center ownership. Unit ids are allocated 1..n per (owner, type) in the
// order StandardStartingUnits declares them.
func NewStandardGameState(gameID string) *GameState {
	players := make(map[string]*Nation, len(standardNations))
	for _, nation := range standardNations {
		players[nation] = &Nation{ID: nation, Status: NationActive}
	}

	counters := make(map[string]int)
	units := make(map[string]*UnitRecord)
	for _, su := range StandardStartingUnits() {
		key := counterKey(su.Owner, su.UnitType)
		counters[key]++
		id := BuildUnitID(su.Owner, su.UnitType, counters[key])
		units[id] = &UnitRecord{ID: id, UnitType: su.UnitType, OwnerID: su.Owner, TerritoryID: su.At}
	}

	owners := make(map[NodeID]string)
	for terr, nation := range StandardStartingOwnerships() {
		owners[terr] = nation
	}

	return &GameState{
		Meta: GameMeta{
			GameID:   gameID,
			Variant:  "standard",
			TurnCode: InitialTurnCode.String(),
			Status:   string(StatusActive),
		},
		Players:        players,
		Units:          units,
		TerritoryOwner: owners,
		RawOrders:      make(map[string][]string),
	}
}
