package prebuilt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

func TestSignature_ZeroAtTarget(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := state.New(m, []int{1, 1}, []int{0, 0}, braid.Identity(2), nil)
	tgt := state.New(m, []int{1, 1}, []int{0, 0}, braid.Identity(2), nil)
	require.NoError(t, src.SetTarget(&tgt))

	assert.Equal(t, uint64(0), Signature(src))
}

func TestSignature_NonzeroAwayFromTarget(t *testing.T) {
	m, err := machine.New(2, -1, 1, 0)
	require.NoError(t, err)

	src := state.New(m, []int{1, 1}, []int{0, 0}, braid.Identity(2), nil)
	tgt := state.New(m, []int{0, 0}, []int{1, 1}, braid.Identity(2), nil)
	require.NoError(t, src.SetTarget(&tgt))

	assert.NotZero(t, Signature(src))
}

func TestRuns(t *testing.T) {
	assert.Equal(t, 0, runs(0))
	assert.Equal(t, 1, runs(0b0111))
	assert.Equal(t, 2, runs(0b1011))
	assert.Equal(t, 2, runs(0b10001))
}

// Incomparable signatures (neither a subset of the other) never dominate,
// so both survive in the antichain.
func TestTable_InsertKeepsIncomparableEntries(t *testing.T) {
	tbl := New()
	tbl.Insert(0, 0b0011, 1)
	tbl.Insert(0, 0b1100, 1)
	assert.Equal(t, 2, tbl.Len())
}

// A subset signature with a distance at least as large as a later,
// broader candidate's dominates it outright: the candidate is redundant.
func TestTable_InsertDropsDominatedCandidate(t *testing.T) {
	tbl := New()
	tbl.Insert(0, 0b0011, 3)
	tbl.Insert(0, 0b1111, 1)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 3, tbl.Query(0, 0b1111))
}

// A new subset entry with a distance at least as large as an existing
// broader entry's makes the existing one redundant and replaces it.
func TestTable_InsertReplacesDominatedExisting(t *testing.T) {
	tbl := New()
	tbl.Insert(0, 0b1111, 1)
	tbl.Insert(0, 0b0011, 5)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 5, tbl.Query(0, 0b1111))
}

func TestTable_QueryFallsBackToRuns(t *testing.T) {
	tbl := New()
	assert.Equal(t, runs(0b0101), tbl.Query(0, 0b0101))
}

func TestTable_QueryNeverExceedsTrueDistance(t *testing.T) {
	m, err := machine.New(3, -2, 2, 0)
	require.NoError(t, err)

	src := state.New(m, []int{1, 0, 1}, []int{0, 1, 0}, braid.Identity(3), nil)
	tgt := state.New(m, []int{0, 0, 0}, []int{1, 1, 1}, braid.Identity(3), nil)
	require.NoError(t, src.SetTarget(&tgt))

	tbl := New()
	tbl.Construct(src, 2, func(s state.State) []state.State {
		var out []state.State
		for _, tr := range enumerate.Canonical(s) {
			out = append(out, tr.Next)
		}
		return out
	})

	assert.Greater(t, tbl.Len(), 0)
	assert.Equal(t, 0, tbl.Query(src.Machine.Racking, Signature(src)))
}
