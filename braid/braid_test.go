package braid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	b := Identity(3)
	assert.Equal(t, 3, b.Strands())
	assert.Equal(t, 0, b.FactorCount())
	assert.True(t, b.CompareWithIdentity())
	assert.True(t, b.Permutation().Identity())
}

func TestBraid_LeftMultiply_SingleCrossing(t *testing.T) {
	b := Identity(3).LeftMultiply(Permutation{1, 0, 2})
	assert.Equal(t, 1, b.FactorCount())
	assert.False(t, b.CompareWithIdentity())
	assert.Equal(t, Permutation{1, 0, 2}, b.Permutation())
}

// Two crossings on disjoint strand pairs commute, so their product is
// itself a single simple element: the permutation swapping both pairs at
// once has Coxeter length 2, matching the two adjacent transpositions
// exactly, so reduceNormalForm must fold them into one factor.
func TestBraid_LeftMultiply_CommutingCrossingsMerge(t *testing.T) {
	b := Identity(4).
		LeftMultiply(Permutation{1, 0, 2, 3}).
		LeftMultiply(Permutation{0, 1, 3, 2})

	assert.Equal(t, 1, b.FactorCount())
	assert.Equal(t, Permutation{1, 0, 3, 2}, b.Permutation())
}

// Crossings on overlapping strand pairs (adjacent generators s0, s1) do not
// commute, but their product s1·s0 is still a permutation braid (each
// strand pair crosses at most once), so reduceNormalForm folds it into a
// single simple factor.
func TestBraid_LeftMultiply_NonCommutingCrossingsFormOneSimpleFactor(t *testing.T) {
	b := Identity(3).
		LeftMultiply(Permutation{1, 0, 2}).
		LeftMultiply(Permutation{0, 2, 1})

	assert.Equal(t, 1, b.FactorCount())
}

func TestBraid_CanMergeAndMerge(t *testing.T) {
	b := Identity(3).LeftMultiply(Permutation{1, 0, 2})

	assert.True(t, b.CanMerge(0))
	assert.False(t, b.CanMerge(1))
	assert.False(t, b.CanMerge(-1))
	assert.False(t, b.CanMerge(2))

	merged := b.Merge(0)
	assert.Equal(t, 2, merged.Strands())
	assert.True(t, merged.CompareWithIdentity())
}

func TestBraid_EqualAndHash(t *testing.T) {
	a := Identity(3).LeftMultiply(Permutation{1, 0, 2})
	b := Identity(3).LeftMultiply(Permutation{1, 0, 2})
	c := Identity(3).LeftMultiply(Permutation{0, 2, 1})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
}

func TestBraid_String(t *testing.T) {
	assert.Equal(t, "id_3", Identity(3).String())

	b := Identity(3).LeftMultiply(Permutation{1, 0, 2})
	assert.NotEqual(t, "id_3", b.String())
}
