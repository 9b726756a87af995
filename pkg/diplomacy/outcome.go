package diplomacy

// OutcomeType is the stable, wire-level classification of how one order
// resolved. Values are the exact strings named in spec.md's outcome
// taxonomy so persisted reports are self-describing.
type OutcomeType string

const (
	MoveSuccess          OutcomeType = "MOVE_SUCCESS"
	MoveBounced          OutcomeType = "MOVE_BOUNCED"
	MoveNoConvoy         OutcomeType = "MOVE_NO_CONVOY"
	SupportSuccess       OutcomeType = "SUPPORT_SUCCESS"
	SupportCut           OutcomeType = "SUPPORT_CUT"
	InvalidSupport       OutcomeType = "INVALID_SUPPORT"
	HoldSuccess          OutcomeType = "HOLD_SUCCESS"
	ConvoySuccess        OutcomeType = "CONVOY_SUCCESS"
	InvalidConvoy        OutcomeType = "INVALID_CONVOY"
	Dislodged            OutcomeType = "DISLODGED"
	RetreatSuccess       OutcomeType = "RETREAT_SUCCESS"
	RetreatFailed        OutcomeType = "RETREAT_FAILED"
	BuildSuccess         OutcomeType = "BUILD_SUCCESS"
	BuildIllegalLocation OutcomeType = "BUILD_ILLEGAL_LOCATION"
	BuildNoCenter        OutcomeType = "BUILD_NO_CENTER"
	DisbandSuccess       OutcomeType = "DISBAND_SUCCESS"
	DisbandFailed        OutcomeType = "DISBAND_FAILED"
)
