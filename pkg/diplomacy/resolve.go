package diplomacy

import (
	"fmt"
	"sort"
)

// invariant panics with a formatted message when cond is false. It marks a
// bug in the resolver itself rather than a recoverable input problem, so it
// is never recovered.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic("diplomacy: invariant violated: " + fmt.Sprintf(format, args...))
	}
}

// NormalizeMovementOrders collapses validated semantic results to exactly
// one order per live unit: a unit with no valid submitted order defaults to
// an implicit Hold; a unit with more than one valid order keeps the first
// encountered (in the caller's already-deterministic iteration order) and
// the rest are returned as duplicates, keyed by unit id.
func NormalizeMovementOrders(state *LoadedState, sems []SemanticResult) (map[string]SemanticResult, map[string][]string) {
	chosen := make(map[string]SemanticResult, len(state.Game.Units))
	duplicates := make(map[string][]string)
	for _, sem := range sems {
		if !sem.Valid || sem.Order == nil {
			continue
		}
		unitID, ok := state.TerritoryToUnit[sem.Order.Origin()]
		if !ok {
			continue
		}
		if _, exists := chosen[unitID]; exists {
			duplicates[unitID] = append(duplicates[unitID], sem.Normalized)
			continue
		}
		chosen[unitID] = sem
	}
	for id, u := range state.Game.Units {
		if _, ok := chosen[id]; !ok {
			chosen[id] = SemanticResult{
				PlayerID: u.OwnerID,
				Valid:    true,
				Order:    HoldOrder{At: u.TerritoryID},
			}
		}
	}
	return chosen, duplicates
}

// moveSlot is one unit's working record for the fixed-point resolver. The
// resolver keeps one moveSlot per unit in a slice indexed by slot; it is a
// list of per-unit structs, not a structure of arrays, and each slot holds
// its own convoy path rather than an offset into a shared buffer.
type moveSlot struct {
	unitID   string
	owner    string
	unitType UnitType
	origin   NodeID
	order    Order
	semantic SemanticResult

	newTerritory NodeID
	strength     int
	dislodged    bool
	dislodgedBy  string
	supportCut   bool

	// plannedDest is the move's effective destination once a convoy
	// coast tie-break (if any) has been applied; empty for non-movers.
	plannedDest NodeID
	moveNoConvoy bool
	forcedBounce bool // direct (non-convoy) head-to-head swap: always bounces
	convoyPath   []NodeID

	supportMatched bool // for Support orders: does the named order match reality
	convoyMatched  bool // for Convoy orders: does an army order actually use it

	outcome OutcomeType
}

// movementResolver holds the working set for one Movement-phase resolution.
type movementResolver struct {
	rules       *Rules
	slots       []*moveSlot
	byOrigin    map[NodeID]*moveSlot
	duplicates  map[string][]string
}

// ResolveMovement is the fixed-point engine (C4) for a Movement phase. It
// consumes exactly one semantic order per live unit (see
// NormalizeMovementOrders) and returns one ResolutionResult per unit plus
// the set of territories that ended the phase as a standoff.
func ResolveMovement(chosen map[string]SemanticResult, duplicates map[string][]string, state *LoadedState, rules *Rules) ([]ResolutionResult, []NodeID) {
	r := newMovementResolver(rules, chosen, duplicates, state)
	r.precomputeSwaps()

	// Every pass recomputes (a) convoy paths through (f) dislodgement, since
	// a dislodged convoying fleet must drop out of convoy discovery on the
	// very next pass (spec.md §4.4's "not already dislodged" clause) and a
	// newly MOVE_NO_CONVOY move must stop cutting support on the next pass.
	n := len(r.slots)
	var prevSnapshot string
	for i := 0; i <= n; i++ {
		r.passConvoyAndDestinations()
		r.passSupportCuts()
		r.passStrength()
		r.passConflictResolution()
		r.passDislodgement()
		snapshot := r.snapshot()
		if snapshot == prevSnapshot {
			break
		}
		invariant(i < n, "movement resolution failed to converge after %d passes", n+1)
		prevSnapshot = snapshot
	}

	return r.buildResults(), r.standoffTerritories()
}

func newMovementResolver(rules *Rules, chosen map[string]SemanticResult, duplicates map[string][]string, state *LoadedState) *movementResolver {
	ids := make([]string, 0, len(chosen))
	for id := range chosen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	r := &movementResolver{
		rules:      rules,
		byOrigin:   make(map[NodeID]*moveSlot, len(chosen)),
		duplicates: duplicates,
	}
	for _, id := range ids {
		sem := chosen[id]
		u := state.Game.Units[id]
		invariant(u != nil, "chosen order for unknown unit %s", id)
		s := &moveSlot{
			unitID:       id,
			owner:        u.OwnerID,
			unitType:     u.UnitType,
			origin:       u.TerritoryID,
			order:        sem.Order,
			semantic:     sem,
			newTerritory: u.TerritoryID,
			strength:     1,
		}
		r.slots = append(r.slots, s)
		r.byOrigin[u.TerritoryID] = s
	}
	return r
}

func (r *movementResolver) slotAt(origin NodeID) *moveSlot {
	return r.byOrigin[origin]
}

// precomputeSwaps marks direct (non-convoy) head-to-head swaps: two units
// ordered to trade places without a convoy can never succeed, regardless of
// strength. This is static given the order set and never revisited by the
// fixed-point loop.
func (r *movementResolver) precomputeSwaps() {
	for _, s := range r.slots {
		mv, ok := s.order.(MoveOrder)
		if !ok {
			continue
		}
		other := r.slotAt(mv.To)
		if other == nil {
			continue
		}
		omv, ok := other.order.(MoveOrder)
		if !ok || omv.To != mv.From {
			continue
		}
		if r.rules.CanTraverse(mv.From, mv.To, s.unitType == Fleet) &&
			r.rules.CanTraverse(omv.From, omv.To, other.unitType == Fleet) {
			s.forcedBounce = true
			other.forcedBounce = true
		}
	}
}

// passConvoyAndDestinations implements spec.md §4.4(a)+(b): discover convoy
// paths for armies ordered to a non-adjacent coast, then set each Move
// slot's provisional destination.
func (r *movementResolver) passConvoyAndDestinations() {
	for _, s := range r.slots {
		mv, ok := s.order.(MoveOrder)
		if !ok {
			continue
		}
		if s.forcedBounce {
			s.newTerritory = s.origin
			s.moveNoConvoy = false
			s.plannedDest = mv.To
			continue
		}
		fleet := s.unitType == Fleet
		if r.rules.CanTraverse(mv.From, mv.To, fleet) {
			s.newTerritory = mv.To
			s.plannedDest = mv.To
			s.moveNoConvoy = false
			s.convoyPath = nil
			continue
		}
		if fleet {
			// Fleets never convoy; the validator should already have
			// rejected this, but fail safe rather than silently move.
			s.newTerritory = s.origin
			s.moveNoConvoy = true
			s.plannedDest = mv.To
			continue
		}
		path, ok := r.discoverConvoyPath(mv.From, mv.To)
		if !ok {
			s.newTerritory = s.origin
			s.moveNoConvoy = true
			s.plannedDest = mv.To
			s.convoyPath = nil
			continue
		}
		dest := r.convoyLandingCoast(mv.To)
		s.newTerritory = dest
		s.plannedDest = dest
		s.moveNoConvoy = false
		s.convoyPath = path
	}
}

// convoyLandingCoast applies the coast tie-break (spec.md §9 Open Question
// 3) for a convoyed move whose destination names a bare region with more
// than one coast and no coast was specified: land on the lexicographically
// least coast id.
func (r *movementResolver) convoyLandingCoast(dest NodeID) NodeID {
	if r.rules.ParentOf(dest) != dest {
		return dest // already a specific coast node
	}
	coasts := r.rules.CoastsOf(dest)
	if len(coasts) < 2 {
		return dest
	}
	sorted := append([]NodeID(nil), coasts...)
	sort.Strings(sorted)
	return sorted[0]
}

// discoverConvoyPath runs a breadth-first search over the not-dislodged
// Convoy orders whose (ArmyFrom, ArmyTo) match, starting from origin-
// adjacent fleets and returning the first chain found (spec.md §4.4(a)).
func (r *movementResolver) discoverConvoyPath(origin, dest NodeID) ([]NodeID, bool) {
	fleetLocs := make([]NodeID, 0)
	for _, s := range r.slots {
		co, ok := s.order.(ConvoyOrder)
		if !ok || s.dislodged {
			continue
		}
		if co.ArmyFrom != origin || co.ArmyTo != dest {
			continue
		}
		fleetLocs = append(fleetLocs, s.origin)
	}
	if len(fleetLocs) == 0 {
		return nil, false
	}
	sort.Strings(fleetLocs)

	type item struct {
		loc  NodeID
		path []NodeID
	}
	visited := make(map[NodeID]bool, len(fleetLocs))
	var queue []item
	for _, loc := range fleetLocs {
		if r.rules.CanTraverse(origin, loc, true) {
			visited[loc] = true
			queue = append(queue, item{loc, []NodeID{loc}})
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if r.rules.CanTraverse(cur.loc, dest, true) {
			return cur.path, true
		}
		for _, loc := range fleetLocs {
			if visited[loc] {
				continue
			}
			if r.rules.CanTraverse(cur.loc, loc, true) {
				visited[loc] = true
				next := append(append([]NodeID(nil), cur.path...), loc)
				queue = append(queue, item{loc, next})
			}
		}
	}
	return nil, false
}

// passSupportCuts implements spec.md §4.4(c). Cutting is evaluated against
// each order's *declared* target, not its current provisional destination:
// a move that fails for an ordinary combat reason still cuts support, only
// MOVE_NO_CONVOY-flagged moves never cut (exception i).
func (r *movementResolver) passSupportCuts() {
	for _, s := range r.slots {
		var supportedAt NodeID
		switch o := s.order.(type) {
		case SupportHoldOrder:
			supportedAt = o.At
		case SupportMoveOrder:
			supportedAt = o.At
		default:
			continue
		}
		cut := false
		for _, other := range r.slots {
			if other == s {
				continue
			}
			mv, ok := other.order.(MoveOrder)
			if !ok || mv.To != supportedAt {
				continue
			}
			if other.moveNoConvoy {
				continue // exception (i)
			}
			if sm, ok := s.order.(SupportMoveOrder); ok && mv.From == sm.SupportedTo {
				continue // exception (ii): victim cannot cut its own attacker's support
			}
			if other.unitID == s.unitID {
				continue // exception (iii): self-cut is impossible
			}
			cut = true
			break
		}
		s.supportCut = cut
	}
}

// passStrength implements spec.md §4.4(d): start every unit at strength 1,
// then add 1 per uncut support whose named order matches reality.
func (r *movementResolver) passStrength() {
	for _, s := range r.slots {
		s.strength = 1
	}
	for _, s := range r.slots {
		switch o := s.order.(type) {
		case SupportMoveOrder:
			target := r.slotAt(o.SupportedFrom)
			if target == nil {
				s.supportMatched = false
				continue
			}
			mv, ok := target.order.(MoveOrder)
			s.supportMatched = ok && mv.To == o.SupportedTo
			if s.supportMatched && !s.supportCut {
				target.strength++
			}
		case SupportHoldOrder:
			target := r.slotAt(o.SupportedAt)
			if target == nil {
				s.supportMatched = false
				continue
			}
			_, moving := target.order.(MoveOrder)
			s.supportMatched = !moving
			if s.supportMatched && !s.supportCut {
				target.strength++
			}
		}
	}
}

// passConflictResolution implements spec.md §4.4(e): group slots by
// current destination, find the max-strength slot(s), and revert losers
// (or, on a tie, every mover) to origin. Returns whether anything changed.
func (r *movementResolver) passConflictResolution() bool {
	changed := false
	groups := make(map[NodeID][]*moveSlot)
	for _, s := range r.slots {
		groups[s.newTerritory] = append(groups[s.newTerritory], s)
	}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		maxStr := -1
		for _, s := range group {
			if s.strength > maxStr {
				maxStr = s.strength
			}
		}
		var winners []*moveSlot
		for _, s := range group {
			if s.strength == maxStr {
				winners = append(winners, s)
			}
		}
		if len(winners) != 1 {
			for _, s := range group {
				if s.newTerritory != s.origin {
					s.newTerritory = s.origin
					changed = true
				}
			}
			continue
		}
		winner := winners[0]
		winnerMoving := winner.newTerritory != winner.origin
		selfConflict := false
		if winnerMoving {
			for _, s := range group {
				if s != winner && s.owner == winner.owner {
					selfConflict = true
					break
				}
			}
		}
		if selfConflict {
			if winner.newTerritory != winner.origin {
				winner.newTerritory = winner.origin
				changed = true
			}
			continue
		}
		for _, s := range group {
			if s == winner {
				continue
			}
			if s.newTerritory != s.origin {
				s.newTerritory = s.origin
				changed = true
			}
		}
	}
	return changed
}

// passDislodgement implements spec.md §4.4(f): a unit is dislodged iff it
// stayed at its origin while a different-owner unit ended its move there.
func (r *movementResolver) passDislodgement() {
	for _, s := range r.slots {
		s.dislodged = false
		s.dislodgedBy = ""
		if s.newTerritory != s.origin {
			continue
		}
		for _, m := range r.slots {
			if m == s || m.owner == s.owner {
				continue
			}
			if _, ok := m.order.(MoveOrder); !ok || m.newTerritory != s.origin {
				continue
			}
			s.dislodged = true
			s.dislodgedBy = m.unitID
			break
		}
	}
}

// snapshot renders the mutable fields of every slot so the fixed-point loop
// can detect "no change" without comparing structs field by field.
func (r *movementResolver) snapshot() string {
	b := make([]byte, 0, len(r.slots)*24)
	for _, s := range r.slots {
		b = append(b, s.unitID...)
		b = append(b, '|')
		b = append(b, s.newTerritory...)
		b = append(b, '|')
		b = appendInt(b, s.strength)
		if s.dislodged {
			b = append(b, 'D')
		}
		if s.supportCut {
			b = append(b, 'C')
		}
		b = append(b, ';')
	}
	return string(b)
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	neg := n < 0
	if neg {
		n = -n
	}
	start := len(b)
	for n > 0 {
		b = append(b, byte('0'+n%10))
		n /= 10
	}
	if neg {
		b = append(b, '-')
	}
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// standoffTerritories reports every territory where two or more moves were
// contesting the same destination and all of them bounced (spec.md's
// standoff-tile definition, carried forward so the Retreat phase can reject
// retreats into it).
func (r *movementResolver) standoffTerritories() []NodeID {
	bounced := make(map[NodeID]int)
	for _, s := range r.slots {
		mv, ok := s.order.(MoveOrder)
		if !ok || s.moveNoConvoy || s.forcedBounce {
			continue
		}
		if s.newTerritory == s.origin && s.plannedDest != "" {
			bounced[mv.To]++
		}
	}
	var out []NodeID
	for terr, n := range bounced {
		if n >= 2 {
			out = append(out, terr)
		}
	}
	sort.Strings(out)
	return out
}

func (r *movementResolver) buildResults() []ResolutionResult {
	results := make([]ResolutionResult, 0, len(r.slots))
	for _, s := range r.slots {
		res := ResolutionResult{
			UnitID:          s.unitID,
			OwnerID:         s.owner,
			UnitType:        s.unitType,
			OriginTerritory: s.origin,
			Strength:        s.strength,
			DuplicateOrders: r.duplicates[s.unitID],
		}
		sem := s.semantic
		res.Semantic = &sem

		switch o := s.order.(type) {
		case MoveOrder:
			res.Destination = o.To
			res.ResolvedTerritory = s.newTerritory
			switch {
			case s.moveNoConvoy:
				res.Outcome = MoveNoConvoy
			case s.newTerritory == s.plannedDest:
				res.Outcome = MoveSuccess
			default:
				res.Outcome = MoveBounced
			}
			if len(s.convoyPath) > 0 {
				res.ConvoyPath = s.convoyPath
			}
		case HoldOrder:
			res.ResolvedTerritory = s.origin
			res.Outcome = HoldSuccess
		case SupportHoldOrder:
			res.ResolvedTerritory = s.origin
			res.SupportedUnitID = unitIDAtOrigin(r, o.SupportedAt)
			switch {
			case !s.supportMatched:
				res.Outcome = InvalidSupport
			case s.supportCut:
				res.Outcome = SupportCut
			default:
				res.Outcome = SupportSuccess
			}
		case SupportMoveOrder:
			res.ResolvedTerritory = s.origin
			res.SupportedUnitID = unitIDAtOrigin(r, o.SupportedFrom)
			switch {
			case !s.supportMatched:
				res.Outcome = InvalidSupport
			case s.supportCut:
				res.Outcome = SupportCut
			default:
				res.Outcome = SupportSuccess
			}
		case ConvoyOrder:
			res.ResolvedTerritory = s.origin
			s.convoyMatched = r.armyOrderMatchesConvoy(o)
			switch {
			case !s.convoyMatched:
				res.Outcome = InvalidConvoy
			default:
				res.Outcome = ConvoySuccess
			}
		}

		if s.dislodged {
			res.Outcome = Dislodged
			res.DislodgedByID = s.dislodgedBy
			res.ResolvedTerritory = s.origin
		}
		results = append(results, res)
	}
	return results
}

func (r *movementResolver) armyOrderMatchesConvoy(co ConvoyOrder) bool {
	army := r.slotAt(co.ArmyFrom)
	if army == nil {
		return false
	}
	mv, ok := army.order.(MoveOrder)
	return ok && mv.To == co.ArmyTo
}

func unitIDAtOrigin(r *movementResolver, origin NodeID) string {
	if s := r.slotAt(origin); s != nil {
		return s.unitID
	}
	return ""
}
