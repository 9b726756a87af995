package diplomacy

// SyntaxResult is the output of parsing one raw order string (C2).
type SyntaxResult struct {
	PlayerID   string   `json:"player_id"`
	Raw        string   `json:"raw"`
	Normalized string   `json:"normalized"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
	Order      Order    `json:"-"`
}

// SemanticResult is the output of validating one parsed order against
// current state and rules (C3).
type SemanticResult struct {
	PlayerID   string   `json:"player_id"`
	Raw        string   `json:"raw"`
	Normalized string   `json:"normalized"`
	Order      Order    `json:"-"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
}

// ResolutionResult is the per-unit outcome of one adjudicated phase.
type ResolutionResult struct {
	UnitID            string          `json:"unit_id"`
	OwnerID           string          `json:"owner_id"`
	UnitType          UnitType        `json:"unit_type"`
	OriginTerritory   NodeID          `json:"origin_territory"`
	Semantic          *SemanticResult `json:"semantic_result,omitempty"`
	Outcome           OutcomeType     `json:"outcome"`
	ResolvedTerritory NodeID          `json:"resolved_territory"`
	Strength          int             `json:"strength"`
	DislodgedByID     string          `json:"dislodged_by_id,omitempty"`
	Destination       NodeID          `json:"destination,omitempty"`
	ConvoyPath        []NodeID        `json:"convoy_path,omitempty"`
	SupportedUnitID   string          `json:"supported_unit_id,omitempty"`
	DuplicateOrders   []string        `json:"duplicate_orders,omitempty"`
}

// PhaseResolutionReport is the full output of one resolved phase.
type PhaseResolutionReport struct {
	Year                int                `json:"year"`
	Season              Season             `json:"season"`
	Phase               Phase              `json:"phase"`
	TurnCode            string             `json:"turn_code"`
	ValidSyntax         []SyntaxResult     `json:"valid_syntax,omitempty"`
	SyntaxErrors        []SyntaxResult     `json:"syntax_errors,omitempty"`
	ValidSemantics      []SemanticResult   `json:"valid_semantics,omitempty"`
	SemanticErrors      []SemanticResult   `json:"semantic_errors,omitempty"`
	ResolutionResults   []ResolutionResult `json:"resolution_results"`
	StandoffTerritories []NodeID           `json:"standoff_territories,omitempty"`
}

// DislodgedUnit returns the resolution result for unitID if it was marked
// DISLODGED in this report, and whether one was found.
func (r *PhaseResolutionReport) DislodgedUnit(unitID string) (ResolutionResult, bool) {
	for _, res := range r.ResolutionResults {
		if res.UnitID == unitID && res.Outcome == Dislodged {
			return res, true
		}
	}
	return ResolutionResult{}, false
}

// ResultFor returns the resolution result for unitID in this report, and
// whether one was found.
func (r *PhaseResolutionReport) ResultFor(unitID string) (ResolutionResult, bool) {
	for _, res := range r.ResolutionResults {
		if res.UnitID == unitID {
			return res, true
		}
	}
	return ResolutionResult{}, false
}

// IsStandoff reports whether territory was a standoff tile in this phase.
func (r *PhaseResolutionReport) IsStandoff(territory NodeID) bool {
	for _, t := range r.StandoffTerritories {
		if t == territory {
			return true
		}
	}
	return false
}

// HasDislodged reports whether any unit was dislodged in this report.
func (r *PhaseResolutionReport) HasDislodged() bool {
	for _, res := range r.ResolutionResults {
		if res.Outcome == Dislodged {
			return true
		}
	}
	return false
}
