package loopstate

import (
	"fmt"
	"strings"

	"github.com/knitplan/knitplan/machine"
)

// Transition is loopstate's counterpart to enumerate.Transition: one edge
// out of a LoopState, under the exact same weight convention (rack
// passes cost 1, pure transfers cost 0, a canonicalizing transfer-set
// that lands on target costs 2).
type Transition struct {
	Next    LoopState
	Weight  int
	Command string
}

func alignedRange(ls LoopState) (int, int) {
	r := ls.Machine.Racking
	lo, hi := 0, ls.Machine.Width
	if r > 0 {
		lo = r
	} else {
		hi = ls.Machine.Width + r
	}
	return lo, hi
}

func xferToken(loc int, toFront bool) string {
	if toFront {
		return fmt.Sprintf("f%d", loc)
	}
	return fmt.Sprintf("b%d", loc)
}

func direction(ls LoopState, loc int, c int) bool {
	if c == 2 {
		return true
	}
	front := machine.NeedleLabel{Front: true, Index: loc}
	return ls.NeedleLoopCount(front) == 0
}

func transferSets(ls LoopState) ([][]int, []int) {
	lo, hi := alignedRange(ls)
	positions := make([]int, 0, hi-lo)
	maxChoice := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		back := machine.NeedleLabel{Front: false, Index: i - ls.Machine.Racking}
		front := machine.NeedleLabel{Front: true, Index: i}
		fc, bc := ls.NeedleLoopCount(front), ls.NeedleLoopCount(back)
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

// Simple is enumerate.Simple's loop-centric counterpart: every in-bounds
// racking taken alone (weight 1) plus every individually legal transfer
// taken alone in both directions (weight 0), with no canonicalization.
func Simple(ls LoopState) []Transition {
	var out []Transition

	for r := ls.Machine.MinRacking; r <= ls.Machine.MaxRacking; r++ {
		next := ls.Clone()
		if next.Rack(r) {
			out = append(out, Transition{Next: next, Weight: 1, Command: fmt.Sprintf("rack %d", r)})
		}
	}

	lo, hi := alignedRange(ls)
	for i := lo; i < hi; i++ {
		if !ls.CanTransfer(i) {
			continue
		}
		for _, toFront := range [2]bool{false, true} {
			next := ls.Clone()
			if next.Transfer(i, toFront) {
				out = append(out, Transition{Next: next, Weight: 0, Command: "xfer " + xferToken(i, toFront)})
			}
		}
	}
	return out
}

// Canonical is enumerate.Canonical's loop-centric counterpart: every
// transfer-set combination followed by every in-bounds racking, with
// Canonicalize applied and the same weight-2 bonus when it lands exactly
// on the target.
func Canonical(ls LoopState) []Transition {
	sets, positions := transferSets(ls)

	var out []Transition
	for _, choices := range sets {
		afterXfer := ls.Clone()
		var tokens []string
		ok := true
		for idx, c := range choices {
			if c == 0 {
				continue
			}
			loc := positions[idx]
			toFront := direction(ls, loc, c)
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

		for r := ls.Machine.MinRacking; r <= ls.Machine.MaxRacking; r++ {
			next := afterXfer.Clone()
			if !next.Rack(r) {
				continue
			}

			weight := 1
			if next.Canonicalize() {
				if tgt := next.target; tgt != nil && next.Equal(*tgt) {
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
