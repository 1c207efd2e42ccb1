package loopstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

// s4Scenario mirrors planner's TestAstar_S4 scenario exactly (one loop on
// back2, unreachable for transfer at the source's racking until a rack
// to 0 brings it into alignedRange, at which point Canonical's automatic
// post-rack Canonicalize carries it straight onto front2 — the target —
// in a single weight-2 edge), built through FromState so the already
// hand-verified needle-centric construction carries over unchanged: with
// exactly one loop per occupied needle here, FromState/ToState round-trip
// losslessly.
func s4Scenario(t *testing.T) (LoopState, LoopState) {
	t.Helper()

	srcMachine, err := machine.New(3, -1, 1, 1)
	require.NoError(t, err)
	srcNeedle := state.New(srcMachine, []int{0, 0, 1}, []int{0, 0, 0}, braid.Identity(1), nil)

	tgtMachine, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)
	tgtNeedle := state.New(tgtMachine, []int{0, 0, 0}, []int{0, 0, 1}, braid.Identity(1), nil)

	src := FromState(srcNeedle)
	tgt := FromState(tgtNeedle)
	require.NoError(t, src.SetTarget(&tgt))
	return src, tgt
}

func TestAstar_S4_OptimalPathIsTwo(t *testing.T) {
	src, _ := s4Scenario(t)
	result := Astar([]LoopState{src}, Braid, Canonical, 20)

	assert.Equal(t, 2, result.PathLength)
	assert.Equal(t, []string{"xfer none; rack 0"}, result.Path)
}

func TestIDAstar_S4_OptimalPathIsTwo(t *testing.T) {
	src, _ := s4Scenario(t)
	result := IDAstar([]LoopState{src}, Braid, Canonical, 20)

	assert.Equal(t, 2, result.PathLength)
	assert.Equal(t, []string{"xfer none; rack 0"}, result.Path)
}

func TestAstar_IDAstar_AgreeOnPathLength(t *testing.T) {
	srcA, _ := s4Scenario(t)
	srcB, _ := s4Scenario(t)

	astarResult := Astar([]LoopState{srcA}, Braid, Canonical, 20)
	idaResult := IDAstar([]LoopState{srcB}, Braid, Canonical, 20)

	assert.Equal(t, astarResult.PathLength, idaResult.PathLength)
}

// Total loop count is conserved the same way state.State's is: neither
// Transfer nor Rack nor Canonicalize can ever create or destroy a
// Locations entry, so a target with a different loop count is provably
// unreachable.
func TestAstar_S5_InfeasibleReturnsMinusOne(t *testing.T) {
	srcMachine, err := machine.New(3, -1, 1, 1)
	require.NoError(t, err)
	src := New(srcMachine, []machine.NeedleLabel{{Front: false, Index: 2}}, braid.Identity(1), nil)

	tgtMachine, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)
	tgt := New(tgtMachine, []machine.NeedleLabel{{Front: false, Index: 2}, {Front: false, Index: 2}}, braid.Identity(1), nil)

	require.NoError(t, src.SetTarget(&tgt))

	result := Astar([]LoopState{src}, Braid, Canonical, 20)
	assert.Equal(t, -1, result.PathLength)
	assert.Empty(t, result.Path)
}
