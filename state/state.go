package state

import (
	"errors"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/machine"
)

// Sentinel errors. InvalidTargetState and InvalidBraidRank are fatal —
// raised by SetTarget / internal rank lookups, never by Rack or Transfer,
// which signal routine rejection by returning false (see spec.md §7).
var (
	ErrInvalidTargetState = errors.New("state: invalid target state")
	ErrInvalidBraidRank   = errors.New("state: invalid braid rank")
)

// Needle holds the loop count currently on one needle and, once a target
// is attached, the needle in the target those loops are destined for.
type Needle struct {
	Count       int
	Destination machine.NeedleLabel
}

// Bed is a fixed-width sequence of Needles, one bed of a Machine.
type Bed []Needle

// Clone returns an independent copy of the bed.
func (b Bed) Clone() Bed {
	out := make(Bed, len(b))
	copy(out, b)
	return out
}

// State is one node of the planner's implicit search graph: a machine's
// full loop configuration, its residual braid, and the slack constraints
// that must hold at every racking it passes through.
type State struct {
	Machine machine.Machine
	Back    Bed
	Front   Bed
	Braid   braid.Braid
	Slack   []SlackConstraint

	// target is a non-owning handle to the state this one is being
	// planned towards. Its lifetime is controlled by the caller (the
	// driver); State never mutates through it. Destinations are
	// precomputed once in SetTarget, so search-time code only reads
	// target.Braid/target.Back/target.Front for equality checks.
	target *State
}

// New constructs a State from per-needle loop counts on each bed. Each
// occupied needle is one braid strand (a needle's count is the number of
// physical loops stacked into that one group, not a count of strands), so
// the braid's strand count must equal the number of occupied needles
// across both beds.
func New(m machine.Machine, backCounts, frontCounts []int, initialBraid braid.Braid, slack []SlackConstraint) State {
	back := make(Bed, m.Width)
	front := make(Bed, m.Width)
	for i := 0; i < m.Width; i++ {
		back[i] = Needle{Count: backCounts[i]}
		front[i] = Needle{Count: frontCounts[i]}
	}
	s := make([]SlackConstraint, len(slack))
	copy(s, slack)

	return State{
		Machine: m,
		Back:    back,
		Front:   front,
		Braid:   initialBraid,
		Slack:   s,
	}
}

// Clone returns a deep copy of s suitable for independent mutation. Braid
// values are immutable under their own API (every operation returns a new
// value), so a shallow copy of the Braid field is safe.
func (s State) Clone() State {
	s.Back = s.Back.Clone()
	s.Front = s.Front.Clone()
	slack := make([]SlackConstraint, len(s.Slack))
	copy(slack, s.Slack)
	s.Slack = slack
	return s
}

// Target returns the state's attached target, or nil.
func (s *State) Target() *State { return s.target }

// SetTarget attaches t as the state's planning target and computes every
// loop's destination from the target's needle layout. t's braid must be
// the identity on the shared strand count; otherwise SetTarget fails with
// ErrInvalidTargetState and leaves s unmodified.
func (s *State) SetTarget(t *State) error {
	if t != nil && !t.Braid.CompareWithIdentity() {
		return ErrInvalidTargetState
	}
	s.target = t
	if t == nil {
		return nil
	}
	return s.calculateDestinations()
}

func (s *State) needleSlot(n machine.NeedleLabel) *Needle {
	if n.Front {
		return &s.Front[n.Index]
	}
	return &s.Back[n.Index]
}

// LoopCount returns the loop count currently on needle n.
func (s State) LoopCount(n machine.NeedleLabel) int {
	if n.Front {
		return s.Front[n.Index].Count
	}
	return s.Back[n.Index].Count
}

// Destination returns the needle n's loops are destined for. Only
// meaningful once a target has been attached and s.LoopCount(n) > 0.
func (s State) Destination(n machine.NeedleLabel) machine.NeedleLabel {
	if n.Front {
		return s.Front[n.Index].Destination
	}
	return s.Back[n.Index].Destination
}

// width2 returns the double-width needle count, 2*Machine.Width.
func (s State) width2() int { return 2 * s.Machine.Width }

// needleWithBraidRank returns the needle whose loop-bearing rank (0-indexed,
// counted in current machine order) equals rank.
func (s State) needleWithBraidRank(rank int) (machine.NeedleLabel, error) {
	j := -1
	for i := 0; i < s.width2(); i++ {
		n := s.Machine.NeedleAt(i)
		if s.LoopCount(n) > 0 {
			j++
			if j == rank {
				return n, nil
			}
		}
	}
	return machine.NeedleLabel{}, ErrInvalidBraidRank
}

// rankOf returns the 0-indexed rank of needle n among loop-bearing needles
// in current machine order.
func (s State) rankOf(n machine.NeedleLabel) (int, error) {
	j := -1
	for i := 0; i < s.width2(); i++ {
		cur := s.Machine.NeedleAt(i)
		if s.LoopCount(cur) > 0 {
			j++
		}
		if cur == n {
			if s.LoopCount(cur) > 0 {
				return j, nil
			}
			return -1, ErrInvalidBraidRank
		}
	}
	return -1, ErrInvalidBraidRank
}

// calculateDestinations runs once, when a target is attached: it walks the
// current needle sequence in machine order and assigns each loop-bearing
// needle the target needle its loops belong to, per spec.md §4.3.
func (s *State) calculateDestinations() error {
	perm := s.Braid.Permutation()

	var dest machine.NeedleLabel
	left := 0
	j := -1
	for i := 0; i < s.width2(); i++ {
		n := s.Machine.NeedleAt(i)
		count := s.LoopCount(n)

		for count > left {
			if left != 0 {
				return ErrInvalidTargetState
			}
			j++
			if j >= len(perm) {
				return ErrInvalidTargetState
			}
			birthRank := perm[j]
			d, err := s.target.needleWithBraidRank(birthRank)
			if err != nil {
				return ErrInvalidTargetState
			}
			dest = d
			left = s.target.LoopCount(dest)
		}
		s.needleSlot(n).Destination = dest
		left -= count
	}
	return nil
}

// CanTransfer reports whether a transfer at the aligned position loc
// (front index loc, back index loc-racking) is legal: both sides empty is
// illegal (nothing to move); one side occupied is always legal; both
// occupied (stacking) requires agreeing destinations and a mergeable
// braid rank.
func (s State) CanTransfer(loc int) bool {
	back := machine.NeedleLabel{Front: false, Index: loc - s.Machine.Racking}
	front := machine.NeedleLabel{Front: true, Index: loc}

	fc, bc := s.LoopCount(front), s.LoopCount(back)
	if fc == 0 && bc == 0 {
		return false
	}
	if fc == 0 || bc == 0 {
		return true
	}
	if s.Destination(front) != s.Destination(back) {
		return false
	}
	rank, err := s.rankOf(back)
	if err != nil {
		return false
	}
	return s.Braid.CanMerge(rank)
}

// Transfer moves the loops at the aligned position loc onto the requested
// side. It reports whether the transfer was legal; on failure s is left
// unchanged.
func (s *State) Transfer(loc int, toFront bool) bool {
	back := machine.NeedleLabel{Front: false, Index: loc - s.Machine.Racking}
	front := machine.NeedleLabel{Front: true, Index: loc}

	fc, bc := s.LoopCount(front), s.LoopCount(back)

	if fc > 0 && bc > 0 {
		if s.Destination(front) != s.Destination(back) {
			return false
		}
		rank, err := s.rankOf(back)
		if err != nil {
			return false
		}
		if !s.Braid.CanMerge(rank) {
			return false
		}
		s.Braid = s.Braid.Merge(rank)
	}

	if toFront {
		fNeedle := s.needleSlot(front)
		bNeedle := s.needleSlot(back)
		fNeedle.Count += bNeedle.Count
		fNeedle.Destination = bNeedle.Destination
		bNeedle.Count = 0
		for i := range s.Slack {
			s.Slack[i].Replace(back, front)
		}
	} else {
		fNeedle := s.needleSlot(front)
		bNeedle := s.needleSlot(back)
		bNeedle.Count += fNeedle.Count
		bNeedle.Destination = fNeedle.Destination
		fNeedle.Count = 0
		for i := range s.Slack {
			s.Slack[i].Replace(front, back)
		}
	}

	return true
}

// Rack moves the machine to a new racking. It reports whether the move
// was legal (within bounds and respecting every slack constraint); on
// failure s is left unchanged. A no-op rack to the current value always
// succeeds and performs no braid work.
func (s *State) Rack(newRacking int) bool {
	if newRacking > s.Machine.MaxRacking || newRacking < s.Machine.MinRacking {
		return false
	}
	if newRacking == s.Machine.Racking {
		return true
	}
	for _, c := range s.Slack {
		if !c.Respected(newRacking) {
			return false
		}
	}

	n2 := s.width2()
	positions := make([]int, n2) // positions[needle.ID()] = old rank
	j := 0
	for i := 0; i < n2; i++ {
		n := s.Machine.NeedleAt(i)
		if s.LoopCount(n) > 0 {
			positions[n.ID()] = j
			j++
		}
	}

	s.Machine.Racking = newRacking

	strands := j
	f := make([]int, strands)
	j = 0
	for i := 0; i < n2; i++ {
		n := s.Machine.NeedleAt(i)
		if s.LoopCount(n) > 0 {
			f[j] = positions[n.ID()]
			j++
		}
	}

	s.Braid = s.Braid.LeftMultiply(f)
	return true
}

// Equal reports whether s and other are the same search-graph node: same
// racking, same bed loop-count sequences, and equal braids. Destinations
// and slack are intentionally excluded so that semantically equivalent
// reachable states collapse in the search, per spec.md §3.
func (s State) Equal(other State) bool {
	if s.Machine.Racking != other.Machine.Racking {
		return false
	}
	if len(s.Back) != len(other.Back) || len(s.Front) != len(other.Front) {
		return false
	}
	for i := range s.Back {
		if s.Back[i].Count != other.Back[i].Count || s.Front[i].Count != other.Front[i].Count {
			return false
		}
	}
	return s.Braid.Equal(other.Braid)
}

// hashSeed is the combiner's starting value, carried over from the
// original reference implementation for bit-for-bit reproducibility.
const hashSeed uint64 = 0xf0e35c6e3c319f8

// hashCombine folds y into h using the fixed 64-bit avalanche mix spec.md
// §3 specifies: h' = h XOR (y + 0x5e7a3ddcc8414e72 + (h<<12) + (h>>3)).
func hashCombine(h uint64, y uint64) uint64 {
	return h ^ (y + 0x5e7a3ddcc8414e72 + (h << 12) + (h >> 3))
}

// Hash returns the stable 64-bit hash used to key the planner's
// visited/cost maps, folding racking, every back count, every front
// count, and the braid's own hash.
func (s State) Hash() uint64 {
	h := hashSeed
	h = hashCombine(h, uint64(int64(s.Machine.Racking)))
	for _, n := range s.Back {
		h = hashCombine(h, uint64(int64(n.Count)))
	}
	for _, n := range s.Front {
		h = hashCombine(h, uint64(int64(n.Count)))
	}
	h = hashCombine(h, s.Braid.Hash())
	return h
}

// Canonicalize mutates s by transferring to front every aligned position
// where the front is empty and the back is occupied. It is a no-op (and
// returns false) when s already equals its target; otherwise it performs
// the transfers and returns true.
func (s *State) Canonicalize() bool {
	if s.target != nil && s.Equal(*s.target) {
		return false
	}

	r := s.Machine.Racking
	lo, hi := 0, s.Machine.Width
	if r > 0 {
		lo = r
	} else {
		hi = s.Machine.Width + r
	}
	for i := lo; i < hi; i++ {
		back := machine.NeedleLabel{Front: false, Index: i - r}
		front := machine.NeedleLabel{Front: true, Index: i}
		if s.LoopCount(back) > 0 && s.LoopCount(front) == 0 {
			s.Transfer(i, true)
		}
	}
	return true
}
