package diplomacy

import (
	"regexp"
	"strings"
)

var (
	dashVariants  = regexp.MustCompile(`[‒–—―−]`)
	nonOrderChars = regexp.MustCompile(`[^a-z0-9\-_\s]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	dashPadding   = regexp.MustCompile(`\s*-\s*`)
)

// Normalize lowercases, trims, collapses whitespace, folds dash variants
// and coast slashes, and pads "-" with single spaces, producing the
// canonical normalized form stored alongside every parse. Normalize is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.TrimSpace(s)
	s = dashVariants.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "/", "_")
	s = nonOrderChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = dashPadding.ReplaceAllString(s, " - ")
	return strings.TrimSpace(s)
}

// ParseOrder normalizes raw and tokenizes it into a typed Order value,
// trying each production admitted by phase in declaration order and
// returning the first that consumes every token. A production that
// matches a prefix but leaves tokens unconsumed is rejected and the next
// candidate is tried (no partial consumption is ever accepted).
func ParseOrder(playerID, raw string, phase Phase) SyntaxResult {
	normalized := Normalize(raw)
	tokens := strings.Fields(normalized)

	result := SyntaxResult{PlayerID: playerID, Raw: raw, Normalized: normalized}

	var order Order
	var err string
	switch phase {
	case PhaseMovement:
		order, err = parseMovementOrder(tokens)
	case PhaseRetreat:
		order, err = parseRetreatOrder(tokens)
	case PhaseAdjustment:
		order, err = parseAdjustmentOrder(tokens)
	default:
		err = "unknown phase"
	}

	if err != "" {
		result.Valid = false
		result.Errors = []string{err}
		return result
	}
	result.Valid = true
	result.Order = order
	return result
}

func parseMovementOrder(tokens []string) (Order, string) {
	if len(tokens) < 2 {
		return nil, "expected at least a province and an order keyword"
	}
	origin := tokens[0]

	// P - Q  (Move)
	if len(tokens) == 3 && tokens[1] == "-" {
		return NewMoveOrder(origin, tokens[2]), ""
	}

	// P hold  (Hold)
	if len(tokens) == 2 && tokens[1] == "hold" {
		return NewHoldOrder(origin), ""
	}

	// P s Q  (SupportHold), with an optional trailing "hold"/"h" keyword
	if len(tokens) == 3 && tokens[1] == "s" {
		return NewSupportHoldOrder(origin, tokens[2]), ""
	}
	if len(tokens) == 4 && tokens[1] == "s" && (tokens[3] == "hold" || tokens[3] == "h") {
		return NewSupportHoldOrder(origin, tokens[2]), ""
	}

	// P s Q - R  (SupportMove)
	if len(tokens) == 5 && tokens[1] == "s" && tokens[3] == "-" {
		return NewSupportMoveOrder(origin, tokens[2], tokens[4]), ""
	}

	// P c Q - R  (Convoy)
	if len(tokens) == 5 && tokens[1] == "c" && tokens[3] == "-" {
		return NewConvoyOrder(origin, tokens[2], tokens[4]), ""
	}

	return nil, "unrecognized movement order shape: " + strings.Join(tokens, " ")
}

func parseRetreatOrder(tokens []string) (Order, string) {
	if len(tokens) == 3 && tokens[1] == "-" {
		return NewRetreatOrder(tokens[0], tokens[2]), ""
	}
	return nil, "expected \"P - Q\" retreat order"
}

func parseAdjustmentOrder(tokens []string) (Order, string) {
	if len(tokens) != 3 {
		return nil, "expected \"build (army|fleet) P\" or \"disband (army|fleet) P\""
	}
	unitType, err := ParseUnitType(tokens[1])
	if err != nil {
		return nil, "expected unit type \"army\" or \"fleet\", got " + tokens[1]
	}
	switch tokens[0] {
	case "build":
		return NewBuildOrder(unitType, tokens[2]), ""
	case "disband":
		return NewDisbandOrder(unitType, tokens[2]), ""
	default:
		return nil, "expected \"build\" or \"disband\", got " + tokens[0]
	}
}
