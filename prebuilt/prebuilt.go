package prebuilt

import (
	"github.com/knitplan/knitplan/state"
)

// Signature computes the offsets bitmask for s: bit j is set when the
// loop-bearing needle of rank j (in current machine order) has not yet
// reached its destination needle. Ranks beyond 64 fold into bit 63 via OR,
// so the signature degrades to an over-approximation (never an
// under-approximation) on machines wide enough to carry more than 64
// loop-bearing needles at once.
func Signature(s state.State) uint64 {
	var sig uint64
	j := 0
	for i := 0; i < 2*s.Machine.Width; i++ {
		n := s.Machine.NeedleAt(i)
		if s.LoopCount(n) == 0 {
			continue
		}
		if n != s.Destination(n) {
			bit := j
			if bit > 63 {
				bit = 63
			}
			sig |= 1 << uint(bit)
		}
		j++
	}
	return sig
}

// runs returns the number of maximal runs of consecutive set bits in sig —
// the idealized distance model this package's table stores: one step can
// resolve one contiguous run at a time.
func runs(sig uint64) int {
	if sig == 0 {
		return 0
	}
	count := 0
	inRun := false
	for i := 0; i < 64; i++ {
		set := sig&(1<<uint(i)) != 0
		if set && !inRun {
			count++
		}
		inRun = set
	}
	return count
}

// entry is one stored (signature, distance) pair for a fixed racking.
type entry struct {
	signature uint64
	distance  int
}

// dominates reports whether a makes b redundant: every query signature
// that matches b (a superset of b's bits) also matches a whenever a's own
// signature is a subset of b's, since a subset's distance applies to any
// of its supersets too. So a subset signature with a distance at least as
// large as b's covers every query b would have, at least as tight —
// making b safe to drop.
func (a entry) dominates(b entry) bool {
	return a.signature&^b.signature == 0 && a.distance >= b.distance
}

// Table is a per-racking antichain of (signature, distance) entries: a
// compact, dominance-pruned record of the BFS step counts Construct
// observed, keyed by racking, used
// as a heuristic.Func source once populated by Construct.
type Table struct {
	byRacking map[int][]entry
}

// New returns an empty table.
func New() *Table {
	return &Table{byRacking: make(map[int][]entry)}
}

// Insert records (sig, dist) for racking, dropping it if an existing
// entry already dominates it, and dropping any existing entries it itself
// dominates. Maintains the antichain property (invariant 7): no two
// stored entries for the same racking are comparable.
func (t *Table) Insert(racking int, sig uint64, dist int) {
	entries := t.byRacking[racking]
	cand := entry{signature: sig, distance: dist}

	for _, e := range entries {
		if e.dominates(cand) {
			return
		}
	}
	out := entries[:0]
	for _, e := range entries {
		if !cand.dominates(e) {
			out = append(out, e)
		}
	}
	t.byRacking[racking] = append(out, cand)
}

// Query returns a distance for sig at racking. An exact stored match (the
// signature Construct actually observed) wins outright, since it is the
// realized distance rather than a derived bound. Otherwise Query falls
// back to the largest admissible lower bound it can support: the best
// subset-dominating stored entry, or runs(sig) — always computable,
// always admissible — if nothing dominates. Query never needs an ok-bool:
// a Table is usable the moment it is constructed.
func (t *Table) Query(racking int, sig uint64) int {
	best := runs(sig)
	for _, e := range t.byRacking[racking] {
		if e.signature == sig {
			return e.distance
		}
		if e.signature&^sig == 0 && e.distance > best {
			best = e.distance
		}
	}
	return best
}

// Len reports the number of stored entries across every racking, mostly
// useful for tests asserting the antichain stays small.
func (t *Table) Len() int {
	n := 0
	for _, entries := range t.byRacking {
		n += len(entries)
	}
	return n
}

// Construct populates t by walking s forward through next (typically
// enumerate.Canonical) up to maxSteps deep in breadth-first order (a
// breadth-limited exploration, not an exhaustive search of the whole
// reachable set), recording each newly-seen (racking, signature) pair
// against the number of steps BFS took to first reach it from s. The BFS
// order guarantees that first visit is always the shortest: every entry
// Construct inserts is the true minimal distance it observed, so it is
// both an exact result for that signature and, by runs()'s admissibility
// argument above, a safe heuristic lower bound for any signature it
// dominates too.
func (t *Table) Construct(s state.State, maxSteps int, next func(state.State) []state.State) {
	type frontierItem struct {
		s     state.State
		steps int
	}
	seen := map[uint64]bool{}
	markSeen := func(racking int, sig uint64) bool {
		key := uint64(uint32(racking))<<32 ^ sig
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}

	start := frontierItem{s: s, steps: 0}
	markSeen(start.s.Machine.Racking, Signature(start.s))
	queue := []frontierItem{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		t.Insert(cur.s.Machine.Racking, Signature(cur.s), cur.steps)

		if cur.steps >= maxSteps {
			continue
		}
		for _, ns := range next(cur.s) {
			if markSeen(ns.Machine.Racking, Signature(ns)) {
				queue = append(queue, frontierItem{s: ns, steps: cur.steps + 1})
			}
		}
	}
}
