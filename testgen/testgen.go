package testgen

import (
	"errors"
	"fmt"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/heuristic"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/planner"
	"github.com/knitplan/knitplan/state"
	"github.com/knitplan/knitplan/state/loopstate"
)

// ErrInconsistentSourceBraid is returned when a TestCase's SourceBraid
// strand count doesn't match the number of occupied source needles.
var ErrInconsistentSourceBraid = errors.New("testgen: source braid strand count does not match occupied source needles")

// TestCase is testgen.h's TestCase: a machine plus a source/target loop
// layout and the slack constraints both ends must respect, from which
// Test/TestID/TestLM21 build the actual search states on demand (rather
// than once in a constructor, so a TestCase value stays safely copyable
// and reusable across multiple runs with different heuristics).
type TestCase struct {
	Machine     machine.Machine
	SourceBack  []int
	SourceFront []int
	TargetBack  []int
	TargetFront []int
	SourceBraid braid.Braid
	Slack       []state.SlackConstraint
}

// New constructs a TestCase, copying every slice so the caller's
// originals remain safe to mutate afterward.
func New(m machine.Machine, sourceBack, sourceFront, targetBack, targetFront []int, sourceBraid braid.Braid, slack []state.SlackConstraint) TestCase {
	cp := func(s []int) []int {
		out := make([]int, len(s))
		copy(out, s)
		return out
	}
	sl := make([]state.SlackConstraint, len(slack))
	copy(sl, slack)

	return TestCase{
		Machine:     m,
		SourceBack:  cp(sourceBack),
		SourceFront: cp(sourceFront),
		TargetBack:  cp(targetBack),
		TargetFront: cp(targetFront),
		SourceBraid: sourceBraid,
		Slack:       sl,
	}
}

func countOccupied(beds ...[]int) int {
	n := 0
	for _, bed := range beds {
		for _, c := range bed {
			if c > 0 {
				n++
			}
		}
	}
	return n
}

// buildStates constructs the source/target state.State pair, wiring the
// target onto the source exactly as TestCase::test does.
func (tc TestCase) buildStates() (state.State, state.State, error) {
	if tc.SourceBraid.Strands() != countOccupied(tc.SourceBack, tc.SourceFront) {
		return state.State{}, state.State{}, ErrInconsistentSourceBraid
	}

	tgt := state.New(tc.Machine, tc.TargetBack, tc.TargetFront, braid.Identity(countOccupied(tc.TargetBack, tc.TargetFront)), tc.Slack)
	src := state.New(tc.Machine, tc.SourceBack, tc.SourceFront, tc.SourceBraid, tc.Slack)
	if err := src.SetTarget(&tgt); err != nil {
		return state.State{}, state.State{}, err
	}
	return src, tgt, nil
}

// Test runs package planner's A* search, mirroring TestCase::test:
// canonicalize selects enumerate.Canonical plus AllCanonicalRackings, or
// enumerate.Simple plus AllRackings.
func (tc TestCase) Test(canonicalize bool, h heuristic.Func, limit int) (planner.SearchResult, error) {
	src, _, err := tc.buildStates()
	if err != nil {
		return planner.SearchResult{}, err
	}

	adjacent := enumerate.Simple
	sources := src.AllRackings()
	if canonicalize {
		adjacent = enumerate.Canonical
		sources = src.AllCanonicalRackings()
	}
	return planner.Astar(sources, h, adjacent, limit), nil
}

// TestID runs package planner's IDA* search, mirroring TestCase::test_id.
func (tc TestCase) TestID(canonicalize bool, h heuristic.Func, limit int) (planner.SearchResult, error) {
	src, _, err := tc.buildStates()
	if err != nil {
		return planner.SearchResult{}, err
	}

	adjacent := enumerate.Simple
	sources := src.AllRackings()
	if canonicalize {
		adjacent = enumerate.Canonical
		sources = src.AllCanonicalRackings()
	}
	return planner.IDAstar(sources, h, adjacent, limit), nil
}

// TestLM21 runs state/loopstate's parallel A* search over the
// loop-centric representation, mirroring TestCase::test_lm21. The source
// and target are built needle-centric first (so SourceBraid's strand
// count is validated the same way Test/TestID validate it) and then
// expanded loop-by-loop via loopstate.FromState.
func (tc TestCase) TestLM21(canonicalize bool, h loopstate.Func, limit int) (loopstate.SearchResult, error) {
	srcNeedle, tgtNeedle, err := tc.buildStates()
	if err != nil {
		return loopstate.SearchResult{}, err
	}

	src := loopstate.FromState(srcNeedle)
	tgt := loopstate.FromState(tgtNeedle)
	if err := src.SetTarget(&tgt); err != nil {
		return loopstate.SearchResult{}, err
	}

	adjacent := loopstate.Simple
	sources := src.AllRackings()
	if canonicalize {
		adjacent = loopstate.Canonical
		sources = src.AllCanonicalRackings()
	}
	return loopstate.Astar(sources, h, adjacent, limit), nil
}

// String renders the test case's source and target layouts, mirroring
// TestCase's operator<<.
func (tc TestCase) String() string {
	return fmt.Sprintf("source: back=%v front=%v\ntarget: back=%v front=%v", tc.SourceBack, tc.SourceFront, tc.TargetBack, tc.TargetFront)
}
