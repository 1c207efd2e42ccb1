package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/heuristic"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

// s4Scenario builds the width-3 source/target pair used by TestAstar_S4
// and its siblings: one loop sits on back2, unreachable for transfer at
// the source's racking (1) since alignedRange excludes it there. Racking
// to 0 alone brings it into range, and the Canonical transition's
// automatic post-rack canonicalize carries it straight onto front2 — the
// target — earning the weight-2 canonicalize bonus (spec.md §4.7 note 2,
// §8 S4) in a single edge. No cheaper edge reaches the target: the other
// two legal rackings (-1 and the racking-1 no-op) each land on a state
// that still differs from target, so path_length 2 is optimal.
func s4Scenario(t *testing.T) (state.State, state.State) {
	t.Helper()

	srcMachine, err := machine.New(3, -1, 1, 1)
	require.NoError(t, err)
	src := state.New(srcMachine, []int{0, 0, 1}, []int{0, 0, 0}, braid.Identity(1), nil)

	tgtMachine, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)
	tgt := state.New(tgtMachine, []int{0, 0, 0}, []int{0, 0, 1}, braid.Identity(1), nil)

	require.NoError(t, src.SetTarget(&tgt))
	return src, tgt
}

func TestAstar_S4_OptimalPathIsTwo(t *testing.T) {
	src, _ := s4Scenario(t)

	result := Astar([]state.State{src}, heuristic.Braid, enumerate.Canonical, 20)

	assert.Equal(t, 2, result.PathLength)
	assert.Equal(t, []string{"xfer none; rack 0"}, result.Path)
}

func TestIDAstar_S4_OptimalPathIsTwo(t *testing.T) {
	src, _ := s4Scenario(t)

	result := IDAstar([]state.State{src}, heuristic.Braid, enumerate.Canonical, 20)

	assert.Equal(t, 2, result.PathLength)
	assert.Equal(t, []string{"xfer none; rack 0"}, result.Path)
}

// TestAstar_IDAstar_AgreeOnPathLength is invariant 4 (spec.md §8): when
// both algorithms terminate with a solution, they report the same
// path_length.
func TestAstar_IDAstar_AgreeOnPathLength(t *testing.T) {
	srcA, _ := s4Scenario(t)
	srcB, _ := s4Scenario(t)

	astarResult := Astar([]state.State{srcA}, heuristic.Braid, enumerate.Canonical, 20)
	idaResult := IDAstar([]state.State{srcB}, heuristic.Braid, enumerate.Canonical, 20)

	assert.Equal(t, astarResult.PathLength, idaResult.PathLength)
}

func TestAstar_AlreadyAtTarget_PathLengthZero(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)
	src := state.New(m, []int{1, 1}, []int{0, 0}, braid.Identity(2), nil)
	tgt := state.New(m, []int{1, 1}, []int{0, 0}, braid.Identity(2), nil)
	require.NoError(t, src.SetTarget(&tgt))

	result := Astar([]state.State{src}, heuristic.Braid, enumerate.Canonical, 20)

	assert.Equal(t, 0, result.PathLength)
	assert.Empty(t, result.Path)
}

// s5Scenario reuses s4Scenario's source but against a target whose total
// loop count (2) differs from the source's (1). No operation in this
// module ever creates or destroys loops — Transfer moves a count between
// two needles, Rack touches no counts at all — so this target can never
// be equal to any reachable state, regardless of search depth.
func s5Scenario(t *testing.T) state.State {
	t.Helper()

	srcMachine, err := machine.New(3, -1, 1, 1)
	require.NoError(t, err)
	src := state.New(srcMachine, []int{0, 0, 1}, []int{0, 0, 0}, braid.Identity(1), nil)

	tgtMachine, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)
	tgt := state.New(tgtMachine, []int{0, 0, 2}, []int{0, 0, 0}, braid.Identity(1), nil)

	require.NoError(t, src.SetTarget(&tgt))
	return src
}

func TestAstar_S5_InfeasibleReturnsMinusOne(t *testing.T) {
	src := s5Scenario(t)

	result := Astar([]state.State{src}, heuristic.Braid, enumerate.Canonical, 20)

	assert.Equal(t, -1, result.PathLength)
	assert.Empty(t, result.Path)
}

func TestIDAstar_S5_InfeasibleReturnsMinusOne(t *testing.T) {
	src := s5Scenario(t)

	// A small limit keeps IDA*'s unmemoized re-expansion of this tiny
	// (but cyclic) reachable set cheap; the target is unreachable at any
	// bound, so this stays a faithful infeasibility check.
	result := IDAstar([]state.State{src}, heuristic.Braid, enumerate.Canonical, 6)

	assert.Equal(t, -1, result.PathLength)
	assert.Empty(t, result.Path)
}
