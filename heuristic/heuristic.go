package heuristic

import (
	"math/bits"

	"github.com/knitplan/knitplan/prebuilt"
	"github.com/knitplan/knitplan/state"
)

// Func estimates a lower bound on the remaining weighted path length from
// s to its attached target. Every Func in this package is admissible:
// it never overestimates the true remaining cost.
type Func func(state.State) int

// No is the uninformed baseline: A* driven by No degenerates to Dijkstra's
// algorithm, exactly as dijkstra.Dijkstra runs with no heuristic at all.
func No(state.State) int { return 0 }

// Target is the coarsest informed bound: 1 while s has not yet reached its
// target, 0 once it has. Always admissible, since reaching the target
// costs at least one transition whenever s isn't already there.
func Target(s state.State) int {
	tgt := s.Target()
	if tgt != nil && s.Equal(*tgt) {
		return 0
	}
	return 1
}

// Offsets computes the 65-bit offset signature spec.md §4.7 defines: for
// each loop-bearing needle n, off = n.Offset(destination(n)); bit off+32
// is set when off lies in [-32, 31] and off != 0. Needles already at
// their destination, and needles whose offset falls outside that window,
// contribute nothing — the signature is an admissible-but-lossy encoding
// of residual horizontal shift for machines wider than 32 needles
// (Open Question 1).
func Offsets(s state.State) uint64 {
	var sig uint64
	for i := 0; i < 2*s.Machine.Width; i++ {
		n := s.Machine.NeedleAt(i)
		if s.LoopCount(n) == 0 {
			continue
		}
		off := n.Offset(s.Destination(n))
		if off == 0 || off < -32 || off > 31 {
			continue
		}
		sig |= 1 << uint(off+32)
	}
	return sig
}

// Log estimates remaining cost from the population count of Offsets,
// under the conjecture that a pass can resolve at most half the distinct
// residual shifts at once, so floor(log2(popcount+1)) is a lower bound on
// passes remaining (spec.md §4.7, note 3, which calls this conjecture
// "observed in practice" rather than proven and asks for exhaustive
// small-width verification — see log_admissible_test.go). Falls back to
// Target when offsets==0, matching Target's own zero-at-destination
// convention. Package planner's own tests drive the search with Braid,
// not Log.
func Log(s state.State) int {
	off := Offsets(s)
	if off == 0 {
		return Target(s)
	}
	popcount := bits.OnesCount64(off)
	n := 0
	for v := popcount + 1; v > 1; v >>= 1 {
		n++
	}
	return n
}

// Braid is the Garside-theoretic bound (spec.md §4.7, invariant 3): the
// braid's factor count is a lower bound on the number of weight-1 rack
// passes still needed, since reducing the normal form to the identity
// braid requires at least one rack pass per surviving simple factor. A
// transfer that stacks two strands calls braid.Merge, which re-reduces the
// normal form and can lower FactorCount; other transfers leave it as is.
// When FactorCount is 0 it falls back to Target.
func Braid(s state.State) int {
	if s.Braid.FactorCount() == 0 {
		return Target(s)
	}
	return s.Braid.FactorCount()
}

// Prebuilt returns a Func backed by tbl: a table-lookup bound keyed on
// (racking, tbl's own signature of s), admissible by construction since
// Construct only ever records distances it actually observed by BFS
// (spec.md §4.8).
func Prebuilt(tbl *prebuilt.Table) Func {
	return func(s state.State) int {
		return tbl.Query(s.Machine.Racking, prebuilt.Signature(s))
	}
}

// Combine returns the maximum of several admissible heuristics, which is
// itself admissible (the true remaining cost is at least as large as any
// individual admissible lower bound, hence at least as large as their
// max). Use this to build braid⊕prebuilt-style composite estimators.
func Combine(fns ...Func) Func {
	return func(s state.State) int {
		best := 0
		for _, f := range fns {
			if v := f(s); v > best {
				best = v
			}
		}
		return best
	}
}
