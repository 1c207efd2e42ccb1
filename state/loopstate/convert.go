package loopstate

import (
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

// FromState builds a LoopState whose Locations reproduce s's needle
// occupancy loop-by-loop: each occupied needle contributes exactly
// s.LoopCount(n) entries set to n, walked in current machine rank order.
// The result's needle occupancy, racking, and braid match s's exactly.
// No slack is carried across — state.SlackConstraint names needles,
// which have no fixed loop-index counterpart here.
func FromState(s state.State) LoopState {
	var locations []machine.NeedleLabel
	for i := 0; i < 2*s.Machine.Width; i++ {
		n := s.Machine.NeedleAt(i)
		for c := 0; c < s.LoopCount(n); c++ {
			locations = append(locations, n)
		}
	}
	return New(s.Machine, locations, s.Braid, nil)
}

// ToState collapses ls back to needle-count form, discarding per-loop
// identity: the needle-centric representation tracks only how many loops
// sit on a needle, never which. Slack is likewise not carried across.
func ToState(ls LoopState) state.State {
	back := make([]int, ls.Machine.Width)
	front := make([]int, ls.Machine.Width)
	for _, n := range ls.Locations {
		if n.Front {
			front[n.Index]++
		} else {
			back[n.Index]++
		}
	}
	return state.New(ls.Machine, back, front, ls.Braid, nil)
}
