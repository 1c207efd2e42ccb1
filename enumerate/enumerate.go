package enumerate

import (
	"fmt"
	"strings"

	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

// Transition is one edge out of a state: the resulting state, the search
// weight it should be charged (rack passes cost 1, pure transfers cost 0,
// and a transfer-set that canonicalizes straight onto the target costs 2
// to cover the implicit transfer pass), and the human-readable command
// that produces it.
type Transition struct {
	Next    state.State
	Weight  int
	Command string
}

// alignedRange returns the front-index range [lo, hi) over which a back
// needle and a front needle are both addressable at the state's current
// racking.
func alignedRange(s state.State) (int, int) {
	r := s.Machine.Racking
	lo, hi := 0, s.Machine.Width
	if r > 0 {
		lo = r
	} else {
		hi = s.Machine.Width + r
	}
	return lo, hi
}

func xferToken(loc int, toFront bool) string {
	if toFront {
		return fmt.Sprintf("f%d", loc)
	}
	return fmt.Sprintf("b%d", loc)
}

// Simple enumerates the baseline adjacency (spec.md §4.5): every in-bounds
// racking taken alone, weight 1, plus every individually legal transfer
// taken alone in both directions, weight 0. It does not combine transfers
// with a racking, and does not apply canonicalization — Canonical below is
// the flavor used in practice by the planner.
func Simple(s state.State) []Transition {
	var out []Transition

	for r := s.Machine.MinRacking; r <= s.Machine.MaxRacking; r++ {
		next := s.Clone()
		if next.Rack(r) {
			out = append(out, Transition{Next: next, Weight: 1, Command: fmt.Sprintf("rack %d", r)})
		}
	}

	lo, hi := alignedRange(s)
	for i := lo; i < hi; i++ {
		if !s.CanTransfer(i) {
			continue
		}
		for _, toFront := range [2]bool{false, true} {
			next := s.Clone()
			if next.Transfer(i, toFront) {
				out = append(out, Transition{Next: next, Weight: 0, Command: "xfer " + xferToken(i, toFront)})
			}
		}
	}
	return out
}

// direction resolves the transfer direction for per-position choice value
// c, following original_source/knitting.cpp's increment_xfers: c==2 always
// means to-front; c==1 means to-front only when the front side is the
// currently empty one (so the occupied side always moves onto the empty
// side when there is no second choice).
func direction(s state.State, loc int, c int) bool {
	if c == 2 {
		return true
	}
	front := machine.NeedleLabel{Front: true, Index: loc}
	return s.LoopCount(front) == 0
}

// transferSets enumerates every combination of per-position transfer
// choices across the aligned positions of s, in position-ascending,
// choice-ascending order: 0 always means "no transfer"; positions with
// loops on both sides additionally offer choice 2 (the other direction).
func transferSets(s state.State) ([][]int, []int) {
	lo, hi := alignedRange(s)
	positions := make([]int, 0, hi-lo)
	maxChoice := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		back := machine.NeedleLabel{Front: false, Index: i - s.Machine.Racking}
		front := machine.NeedleLabel{Front: true, Index: i}
		fc, bc := s.LoopCount(front), s.LoopCount(back)
		if fc == 0 && bc == 0 {
			continue
		}
		positions = append(positions, i)
		if fc > 0 && bc > 0 {
			maxChoice = append(maxChoice, 2)
		} else {
			maxChoice = append(maxChoice, 1)
		}
	}

	var out [][]int
	choices := make([]int, len(positions))
	var rec func(idx int)
	rec = func(idx int) {
		if idx == len(positions) {
			cp := make([]int, len(choices))
			copy(cp, choices)
			out = append(out, cp)
			return
		}
		for c := 0; c <= maxChoice[idx]; c++ {
			choices[idx] = c
			rec(idx + 1)
		}
	}
	rec(0)
	return out, positions
}

// Canonical enumerates the transfer-set-then-racking adjacency used by the
// planner, grounded on original_source/knitting.cpp's TransitionIterator:
// every combination of per-position transfer choices, each followed by
// every in-bounds racking, with canonicalization applied to the result and
// a weight-2 bonus when that canonicalization lands exactly on the target.
func Canonical(s state.State) []Transition {
	sets, positions := transferSets(s)

	var out []Transition
	for _, choices := range sets {
		afterXfer := s.Clone()
		var tokens []string
		ok := true
		for idx, c := range choices {
			if c == 0 {
				continue
			}
			loc := positions[idx]
			toFront := direction(s, loc, c)
			if !afterXfer.Transfer(loc, toFront) {
				ok = false
				break
			}
			tokens = append(tokens, xferToken(loc, toFront))
		}
		if !ok {
			continue
		}

		xferPart := "xfer none"
		if len(tokens) > 0 {
			xferPart = "xfer " + strings.Join(tokens, " ")
		}

		for r := s.Machine.MinRacking; r <= s.Machine.MaxRacking; r++ {
			next := afterXfer.Clone()
			if !next.Rack(r) {
				continue
			}

			weight := 1
			if next.Canonicalize() {
				if tgt := next.Target(); tgt != nil && next.Equal(*tgt) {
					weight = 2
				}
			}

			out = append(out, Transition{
				Next:    next,
				Weight:  weight,
				Command: fmt.Sprintf("%s; rack %d", xferPart, r),
			})
		}
	}
	return out
}
