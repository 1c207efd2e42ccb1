package loopstate

import (
	"math/bits"

	"github.com/knitplan/knitplan/prebuilt"
)

// Func estimates a lower bound on the remaining weighted path length from
// ls to its attached target. Mirrors heuristic.Func's admissibility
// contract one representation over.
type Func func(LoopState) int

// No is the uninformed baseline, matching heuristic.No.
func No(LoopState) int { return 0 }

// Target is 1 while ls has not yet reached its target, 0 once it has.
func Target(ls LoopState) int {
	if tgt := ls.target; tgt != nil && ls.Equal(*tgt) {
		return 0
	}
	return 1
}

// Offsets computes the same 65-bit offset signature as heuristic.Offsets,
// one bit per loop-bearing needle whose offset from its destination falls
// in [-32, 31] and isn't zero.
func Offsets(ls LoopState) uint64 {
	var sig uint64
	for i := 0; i < ls.width2(); i++ {
		n := ls.Machine.NeedleAt(i)
		if ls.needleLoopCount(n) == 0 {
			continue
		}
		d, ok := ls.destination[n]
		if !ok {
			continue
		}
		off := n.Offset(d)
		if off == 0 || off < -32 || off > 31 {
			continue
		}
		sig |= 1 << uint(off+32)
	}
	return sig
}

// Log mirrors heuristic.Log's conjectural popcount bound, under the same
// unproven-but-tested assumption (see heuristic.Log's doc comment).
func Log(ls LoopState) int {
	off := Offsets(ls)
	if off == 0 {
		return Target(ls)
	}
	popcount := bits.OnesCount64(off)
	n := 0
	for v := popcount + 1; v > 1; v >>= 1 {
		n++
	}
	return n
}

// Braid is the Garside-theoretic bound, identical in meaning to
// heuristic.Braid: the braid's factor count lower-bounds remaining
// weight-1 rack passes, falling back to Target when FactorCount is 0.
func Braid(ls LoopState) int {
	if ls.Braid.FactorCount() == 0 {
		return Target(ls)
	}
	return ls.Braid.FactorCount()
}

// Prebuilt adapts a prebuilt.Table (built against the needle-centric
// representation) to LoopState by converting through ToState before
// querying — the table's signature and distance model are representation
// agnostic, so no loop-centric duplicate of package prebuilt is needed.
func Prebuilt(tbl *prebuilt.Table) Func {
	return func(ls LoopState) int {
		s := ToState(ls)
		return tbl.Query(s.Machine.Racking, prebuilt.Signature(s))
	}
}

// Combine returns the maximum of several admissible heuristics, which
// stays admissible, matching heuristic.Combine.
func Combine(fns ...Func) Func {
	return func(ls LoopState) int {
		best := 0
		for _, f := range fns {
			if v := f(ls); v > best {
				best = v
			}
		}
		return best
	}
}
