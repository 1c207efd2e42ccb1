package braid

import (
	"fmt"
	"strings"

	farm "github.com/dgryski/go-farm"
)

// Braid is an element of the Artin braid group on a fixed number of
// strands. The zero value is not valid; construct with Identity.
type Braid struct {
	strands int
	perm    Permutation   // net strand permutation: perm[i] = birth rank of the strand currently at position i.
	factors []Permutation // Garside left normal form, leftmost factor first; LeftMultiply prepends its factor before re-reducing.
}

// Identity returns the identity braid on n strands.
func Identity(n int) Braid {
	return Braid{
		strands: n,
		perm:    IdentityPermutation(n),
		factors: nil,
	}
}

// Strands reports the number of strands (the braid group index).
func (b Braid) Strands() int { return b.strands }

// FactorCount returns the number of simple factors in the left normal
// form — a lower bound on the number of rack passes needed to reach the
// identity braid.
func (b Braid) FactorCount() int { return len(b.factors) }

// CompareWithIdentity reports whether b is the identity braid.
func (b Braid) CompareWithIdentity() bool { return len(b.factors) == 0 }

// Permutation returns the net strand permutation accumulated so far:
// Permutation()[i] is the birth rank of the strand currently occupying
// position-rank i.
func (b Braid) Permutation() Permutation { return b.perm.Clone() }

// Equal reports whether two braids, viewed as elements of the same braid
// group, are equal. The left normal form is unique, so Equal compares the
// strand counts and the reduced factor lists. The net permutation alone
// does not decide equality: s_i·s_i has the identity permutation but is
// not the identity braid.
func (b Braid) Equal(other Braid) bool {
	if b.strands != other.strands {
		return false
	}
	if len(b.factors) != len(other.factors) {
		return false
	}
	for i := range b.factors {
		if !b.factors[i].Equal(other.factors[i]) {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of the braid's reduced factor list, used by
// the kernel contract's hash() operation. It is independent of the
// state-level hash combiner in package state, which folds racking and bed
// counts using its own fixed constant.
func (b Braid) Hash() uint64 {
	buf := make([]byte, 0, 4+4*len(b.factors)*b.strands)
	buf = appendInt(buf, b.strands)
	for _, f := range b.factors {
		for _, v := range f {
			buf = appendInt(buf, v)
		}
		buf = appendInt(buf, -1) // factor separator
	}
	return farm.Hash64WithSeed(buf, 0x9e3779b97f4a7c15)
}

func appendInt(buf []byte, v int) []byte {
	u := uint32(int32(v))
	return append(buf, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

// LeftMultiply returns a new braid equal to f * b (f's crossings occur
// closest to the strands' birth ends) with its normal form re-reduced.
func (b Braid) LeftMultiply(f Permutation) Braid {
	perm, err := b.perm.Compose(f)
	if err != nil {
		perm = b.perm
	}

	factors := make([]Permutation, 0, len(b.factors)+1)
	factors = append(factors, f)
	factors = append(factors, b.factors...)

	return Braid{
		strands: b.strands,
		perm:    perm,
		factors: reduceNormalForm(factors),
	}
}

// reduceNormalForm computes the left-greedy Garside normal form of a
// sequence of permutation factors by repeatedly sweeping adjacent pairs
// and moving left descents of the later factor into the earlier one,
// dropping any factor that degenerates to the identity. The sweep
// converges because every move strictly shortens the later factor while
// lengthening the earlier one by exactly one Coxeter generator, and total
// length is bounded.
func reduceNormalForm(factors []Permutation) []Permutation {
	changed := true
	for changed {
		changed = false
		for i := 0; i+1 < len(factors); i++ {
			a, b := factors[i], factors[i+1]
			for {
				moved := false
				starts := b.leftDescents()
				finishes := a.rightDescents()
				for s := range starts {
					if starts[s] && !finishes[s] {
						a = a.swapPositions(s)
						b = b.swapValues(s)
						moved = true
						changed = true
						break
					}
				}
				if !moved {
					break
				}
			}
			factors[i], factors[i+1] = a, b
		}
		factors = compact(factors)
	}
	return factors
}

func compact(factors []Permutation) []Permutation {
	out := factors[:0]
	for _, f := range factors {
		if !f.Identity() {
			out = append(out, f)
		}
	}
	return out
}

// CanMerge reports whether the strand at rank k and the strand at rank
// k+1 (0-indexed ranks in the current net permutation's domain) may be
// fused into a single strand — physically, whether two loops about to
// stack onto the same needle have only ever crossed each other and no
// third strand, so collapsing them does not discard recorded crossings.
func (b Braid) CanMerge(k int) bool {
	if k < 0 || k+1 >= b.strands {
		return false
	}
	for _, f := range b.factors {
		lo, hi := f[k], f[k+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo != 1 {
			return false
		}
	}
	return true
}

// Merge fuses the strand at rank k with the strand at rank k+1, reducing
// the strand count by one. The caller must have verified CanMerge(k).
func (b Braid) Merge(k int) Braid {
	factors := make([]Permutation, 0, len(b.factors))
	for _, f := range b.factors {
		factors = append(factors, dropStrand(f, k))
	}
	return Braid{
		strands: b.strands - 1,
		perm:    dropStrand(b.perm, k),
		factors: reduceNormalForm(factors),
	}
}

// dropStrand removes position/value k+1 from p, treating k and k+1 as
// fused: any value equal to k+1 collapses onto k, and every remaining
// value greater than k+1 shifts down by one to keep a dense 0..n-2 range.
func dropStrand(p Permutation, k int) Permutation {
	out := make(Permutation, 0, len(p)-1)
	for i, v := range p {
		if i == k+1 {
			continue
		}
		switch {
		case v == k+1:
			v = k
		case v > k+1:
			v--
		}
		out = append(out, v)
	}
	return out
}

// String renders the braid as its ordered list of simple factors, one-line
// notation, matching the terse debug rendering the teacher's graph types
// use for their own String methods.
func (b Braid) String() string {
	if len(b.factors) == 0 {
		return fmt.Sprintf("id_%d", b.strands)
	}
	parts := make([]string, len(b.factors))
	for i, f := range b.factors {
		parts[i] = fmt.Sprint([]int(f))
	}
	return strings.Join(parts, "*")
}
