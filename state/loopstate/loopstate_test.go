package loopstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

func b(front bool, index int) machine.NeedleLabel {
	return machine.NeedleLabel{Front: front, Index: index}
}

func TestLoopState_SetTarget_AssignsDestinations(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := New(m, []machine.NeedleLabel{b(false, 0), b(false, 1)}, braid.Identity(2), nil)
	tgt := New(m, []machine.NeedleLabel{b(true, 0), b(true, 1)}, braid.Identity(2), nil)

	require.NoError(t, src.SetTarget(&tgt))

	assert.Equal(t, b(true, 0), src.Destination(b(false, 0)))
	assert.Equal(t, b(true, 1), src.Destination(b(false, 1)))
}

func TestLoopState_SetTarget_RejectsNonIdentityTargetBraid(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := New(m, []machine.NeedleLabel{b(false, 0), b(false, 1)}, braid.Identity(2), nil)
	tgt := New(m, []machine.NeedleLabel{b(true, 0), b(true, 1)}, braid.Identity(2).LeftMultiply(braid.Permutation{1, 0}), nil)

	assert.ErrorIs(t, src.SetTarget(&tgt), ErrInvalidTargetState)
}

// Mirrors state.State's stacking-rejection scenario: two occupied needles
// meet at the same aligned position but are destined for different
// needles, so neither direction of transfer is legal — the divergence
// from knitting_lm21.cpp's looser can_transfer that this package's doc
// comment calls out.
func TestLoopState_CanTransfer_RejectsDisagreeingDestinations(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := New(m, []machine.NeedleLabel{b(false, 0), b(false, 1), b(true, 0)}, braid.Identity(3), nil)
	tgt := New(m, []machine.NeedleLabel{b(true, 1), b(false, 1), b(true, 0)}, braid.Identity(3), nil)
	require.NoError(t, src.SetTarget(&tgt))

	require.NotEqual(t, src.Destination(b(true, 0)), src.Destination(b(false, 0)))

	assert.False(t, src.CanTransfer(0))
	assert.False(t, src.Transfer(0, true))
	assert.False(t, src.Transfer(0, false))

	assert.Equal(t, 1, src.NeedleLoopCount(b(false, 0)))
	assert.Equal(t, 1, src.NeedleLoopCount(b(true, 0)))
}

func TestLoopState_Transfer_MergesStackedLoopsWhenMergeable(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	// Adjacent-rank strands (an identity braid never separates any pair)
	// are always mergeable.
	s := New(m, []machine.NeedleLabel{b(false, 0), b(true, 0)}, braid.Identity(2), nil)

	require.True(t, s.CanTransfer(0))
	require.True(t, s.Transfer(0, true))

	assert.Equal(t, 2, s.NeedleLoopCount(b(true, 0)))
	assert.Equal(t, 0, s.NeedleLoopCount(b(false, 0)))
	assert.Equal(t, 1, s.Braid.Strands())
	assert.True(t, s.Braid.CompareWithIdentity())
}

func TestLoopState_Transfer_MergesAfterRackingCrossesTheOnlyOtherStrand(t *testing.T) {
	m, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)

	// Two strands only (f0, b1); after racking by -1 they align at
	// position 0, having crossed exactly once and only with each other,
	// so merging them discards no recorded crossing with a third strand.
	s := New(m, []machine.NeedleLabel{b(true, 0), b(false, 1)}, braid.Identity(2), nil)
	require.True(t, s.Rack(-1))

	require.True(t, s.CanTransfer(0))
	require.True(t, s.Transfer(0, true))
	assert.Equal(t, 1, s.Braid.Strands())
}

// Transfer moves every loop at the aligned position, not just one —
// stacking three loops onto one needle still collapses to a single
// Transfer call.
func TestLoopState_Transfer_MovesEveryLoopAtThePosition(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	s := New(m, []machine.NeedleLabel{b(false, 0), b(false, 0), b(false, 0)}, braid.Identity(1), nil)

	require.True(t, s.Transfer(0, true))

	assert.Equal(t, 3, s.NeedleLoopCount(b(true, 0)))
	assert.Equal(t, 0, s.NeedleLoopCount(b(false, 0)))
}

func TestLoopState_Rack_UpdatesBraidViaLeftMultiply(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	s := New(m, []machine.NeedleLabel{b(false, 1), b(true, 0)}, braid.Identity(2), nil)

	require.True(t, s.Rack(-1))

	assert.Equal(t, -1, s.Machine.Racking)
	assert.False(t, s.Braid.CompareWithIdentity())
}

func TestLoopState_Rack_RejectsOutOfBounds(t *testing.T) {
	m, err := machine.New(3, -1, 1, 0)
	require.NoError(t, err)

	s := New(m, []machine.NeedleLabel{b(false, 0)}, braid.Identity(1), nil)

	assert.False(t, s.Rack(2))
	assert.Equal(t, 0, s.Machine.Racking)
}

func TestLoopState_Rack_RejectsWhenSlackViolated(t *testing.T) {
	m, err := machine.New(4, -2, 2, 0)
	require.NoError(t, err)

	slack := []LoopSlackConstraint{{Loop1: 0, Loop2: 1, Limit: 0}}
	s := New(m, []machine.NeedleLabel{b(false, 0), b(true, 0)}, braid.Identity(2), slack)

	require.True(t, slack[0].Respected(s, 0))
	assert.False(t, s.Rack(1))
	assert.Equal(t, 0, s.Machine.Racking)
}

func TestLoopState_Canonicalize_NoOpWhenAlreadyAtTarget(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := New(m, []machine.NeedleLabel{b(true, 0), b(true, 1)}, braid.Identity(2), nil)
	tgt := New(m, []machine.NeedleLabel{b(true, 0), b(true, 1)}, braid.Identity(2), nil)
	require.NoError(t, src.SetTarget(&tgt))

	assert.False(t, src.Canonicalize())
}

func TestLoopState_Canonicalize_TransfersOccupiedBackOntoEmptyFront(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	s := New(m, []machine.NeedleLabel{b(false, 0), b(false, 1)}, braid.Identity(2), nil)

	assert.True(t, s.Canonicalize())
	assert.Equal(t, 2, s.NeedleLoopCount(b(true, 0))+s.NeedleLoopCount(b(true, 1)))
	assert.Equal(t, 0, s.NeedleLoopCount(b(false, 0)))
	assert.Equal(t, 0, s.NeedleLoopCount(b(false, 1)))
}

// Equal (and Hash) only depend on per-needle loop counts, not on which
// loop indices make up that count.
func TestLoopState_Equal_IgnoresLoopOrderingWithinANeedle(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	a := New(m, []machine.NeedleLabel{b(false, 0), b(true, 1)}, braid.Identity(2), nil)
	same := New(m, []machine.NeedleLabel{b(true, 1), b(false, 0)}, braid.Identity(2), nil)
	different := New(m, []machine.NeedleLabel{b(false, 0)}, braid.Identity(1), nil)

	assert.True(t, a.Equal(same))
	assert.Equal(t, a.Hash(), same.Hash())
	assert.False(t, a.Equal(different))
}

func TestLoopState_FromState_ToState_RoundTrip(t *testing.T) {
	m, err := machine.New(3, -1, 1, 1)
	require.NoError(t, err)

	orig := state.New(m, []int{0, 0, 1}, []int{0, 2, 0}, braid.Identity(2), nil)

	ls := FromState(orig)
	back := ToState(ls)

	assert.True(t, orig.Equal(back))
}

func TestLoopSlackConstraint_Respected_ResolvesCurrentNeedle(t *testing.T) {
	m, err := machine.New(4, -2, 2, 0)
	require.NoError(t, err)

	s := New(m, []machine.NeedleLabel{b(false, 0), b(true, 1)}, braid.Identity(2), nil)
	c := LoopSlackConstraint{Loop1: 0, Loop2: 1, Limit: 1}

	assert.True(t, c.Respected(s, 0))
	assert.False(t, c.Respected(s, -2))
}
