package loopstate

import (
	"errors"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/machine"
)

// Sentinel errors, mirroring state package's naming for the same failure
// modes at loop granularity.
var (
	ErrInvalidTargetState = errors.New("loopstate: invalid target state")
	ErrInvalidBraidRank   = errors.New("loopstate: invalid braid rank")
)

// LoopSlackConstraint bounds the horizontal separation between two
// physical loops, named by index into LoopState.Locations rather than by
// fixed needle — the original_source/knitting_lm21.cpp shape: a
// constraint between two loops stays meaningful even after one of them
// has been transferred elsewhere, since it is resolved dynamically
// through whichever needle the loop currently sits on.
type LoopSlackConstraint struct {
	Loop1 int
	Loop2 int
	Limit int
}

// Respected reports whether the constraint holds at the given racking,
// resolving each endpoint's current needle through ls.Locations.
func (c LoopSlackConstraint) Respected(ls LoopState, racking int) bool {
	n1 := ls.Locations[c.Loop1]
	n2 := ls.Locations[c.Loop2]
	d := n1.Location(racking) - n2.Location(racking)
	if d < 0 {
		d = -d
	}
	return d <= c.Limit
}

// LoopState is the loop-centric counterpart to state.State: Locations[i]
// names the needle physical loop i currently sits on. Needle occupancy
// and per-needle destination are derived on demand by scanning Locations,
// rather than stored directly, since a single needle's loop count is
// itself derived data here.
type LoopState struct {
	Machine machine.Machine
	Locations []machine.NeedleLabel
	Braid     braid.Braid
	Slack     []LoopSlackConstraint

	target      *LoopState
	destination map[machine.NeedleLabel]machine.NeedleLabel
}

// New constructs a LoopState from one needle label per physical loop,
// indexed by loop index (locations[i] is the needle loop i starts on).
func New(m machine.Machine, locations []machine.NeedleLabel, initialBraid braid.Braid, slack []LoopSlackConstraint) LoopState {
	locs := make([]machine.NeedleLabel, len(locations))
	copy(locs, locations)
	s := make([]LoopSlackConstraint, len(slack))
	copy(s, slack)

	return LoopState{
		Machine:   m,
		Locations: locs,
		Braid:     initialBraid,
		Slack:     s,
	}
}

// Clone returns a deep copy of ls suitable for independent mutation.
func (ls LoopState) Clone() LoopState {
	locs := make([]machine.NeedleLabel, len(ls.Locations))
	copy(locs, ls.Locations)
	ls.Locations = locs

	slack := make([]LoopSlackConstraint, len(ls.Slack))
	copy(slack, ls.Slack)
	ls.Slack = slack

	if ls.destination != nil {
		d := make(map[machine.NeedleLabel]machine.NeedleLabel, len(ls.destination))
		for k, v := range ls.destination {
			d[k] = v
		}
		ls.destination = d
	}
	return ls
}

// Target returns ls's attached target, or nil.
func (ls LoopState) Target() *LoopState { return ls.target }

// needleLoopCount returns how many of ls.Locations currently name n.
func (ls LoopState) needleLoopCount(n machine.NeedleLabel) int {
	c := 0
	for _, loc := range ls.Locations {
		if loc == n {
			c++
		}
	}
	return c
}

// NeedleLoopCount returns the number of physical loops currently sitting
// on needle n.
func (ls LoopState) NeedleLoopCount(n machine.NeedleLabel) int { return ls.needleLoopCount(n) }

// Destination returns the needle n's loops are destined for. Only
// meaningful once a target has been attached and NeedleLoopCount(n) > 0.
func (ls LoopState) Destination(n machine.NeedleLabel) machine.NeedleLabel {
	return ls.destination[n]
}

func (ls LoopState) width2() int { return 2 * ls.Machine.Width }

// needleWithBraidRank returns the needle whose loop-bearing rank (0-indexed,
// counted in current machine order) equals rank.
func (ls LoopState) needleWithBraidRank(rank int) (machine.NeedleLabel, error) {
	j := -1
	for i := 0; i < ls.width2(); i++ {
		n := ls.Machine.NeedleAt(i)
		if ls.needleLoopCount(n) > 0 {
			j++
			if j == rank {
				return n, nil
			}
		}
	}
	return machine.NeedleLabel{}, ErrInvalidBraidRank
}

// rankOf returns the 0-indexed rank of needle n among loop-bearing
// needles in current machine order.
func (ls LoopState) rankOf(n machine.NeedleLabel) (int, error) {
	j := -1
	for i := 0; i < ls.width2(); i++ {
		cur := ls.Machine.NeedleAt(i)
		if ls.needleLoopCount(cur) > 0 {
			j++
		}
		if cur == n {
			if ls.needleLoopCount(cur) > 0 {
				return j, nil
			}
			return -1, ErrInvalidBraidRank
		}
	}
	return -1, ErrInvalidBraidRank
}

// SetTarget attaches t as ls's planning target and computes every
// needle's destination from t's loop occupancy. t's braid must be the
// identity on the shared strand count; otherwise SetTarget fails with
// ErrInvalidTargetState and leaves ls unmodified.
func (ls *LoopState) SetTarget(t *LoopState) error {
	if t != nil && !t.Braid.CompareWithIdentity() {
		return ErrInvalidTargetState
	}
	ls.target = t
	if t == nil {
		return nil
	}
	return ls.calculateDestinations()
}

// calculateDestinations runs once, when a target is attached: it walks
// the current needle sequence in machine order and assigns each
// loop-bearing needle the target needle its loops belong to, following
// the same birth-rank walk as state.State.calculateDestinations.
func (ls *LoopState) calculateDestinations() error {
	perm := ls.Braid.Permutation()
	dest := make(map[machine.NeedleLabel]machine.NeedleLabel)

	var d machine.NeedleLabel
	left := 0
	j := -1
	for i := 0; i < ls.width2(); i++ {
		n := ls.Machine.NeedleAt(i)
		count := ls.needleLoopCount(n)

		for count > left {
			if left != 0 {
				return ErrInvalidTargetState
			}
			j++
			if j >= len(perm) {
				return ErrInvalidTargetState
			}
			birthRank := perm[j]
			nd, err := ls.target.needleWithBraidRank(birthRank)
			if err != nil {
				return ErrInvalidTargetState
			}
			d = nd
			left = ls.target.needleLoopCount(d)
		}
		dest[n] = d
		left -= count
	}
	ls.destination = dest
	return nil
}

// CanTransfer reports whether a transfer at the aligned position loc
// (front index loc, back index loc-racking) is legal, under the same
// discipline as state.State.CanTransfer: both sides empty is illegal;
// one side occupied is always legal; both occupied (stacking) requires
// agreeing destinations and a mergeable braid rank.
func (ls LoopState) CanTransfer(loc int) bool {
	back := machine.NeedleLabel{Front: false, Index: loc - ls.Machine.Racking}
	front := machine.NeedleLabel{Front: true, Index: loc}

	fc, bc := ls.needleLoopCount(front), ls.needleLoopCount(back)
	if fc == 0 && bc == 0 {
		return false
	}
	if fc == 0 || bc == 0 {
		return true
	}
	if ls.destination[front] != ls.destination[back] {
		return false
	}
	rank, err := ls.rankOf(back)
	if err != nil {
		return false
	}
	return ls.Braid.CanMerge(rank)
}

// Transfer moves every loop at the aligned position loc onto the
// requested side, reassigning their Locations entries in place. It
// reports whether the transfer was legal; on failure ls is left
// unchanged. Unlike state.State.Transfer, no Slack rewrite is needed:
// LoopSlackConstraint names loop indices, not needles, so a constraint
// stays valid across the move without adjustment — it simply resolves to
// the loop's new needle next time Respected is called.
func (ls *LoopState) Transfer(loc int, toFront bool) bool {
	back := machine.NeedleLabel{Front: false, Index: loc - ls.Machine.Racking}
	front := machine.NeedleLabel{Front: true, Index: loc}

	fc, bc := ls.needleLoopCount(front), ls.needleLoopCount(back)

	if fc > 0 && bc > 0 {
		if ls.destination[front] != ls.destination[back] {
			return false
		}
		rank, err := ls.rankOf(back)
		if err != nil {
			return false
		}
		if !ls.Braid.CanMerge(rank) {
			return false
		}
		ls.Braid = ls.Braid.Merge(rank)
	}

	from, to := front, back
	if toFront {
		from, to = back, front
	}
	for i, loc2 := range ls.Locations {
		if loc2 == from {
			ls.Locations[i] = to
		}
	}
	if ls.destination != nil {
		if d, ok := ls.destination[from]; ok {
			ls.destination[to] = d
		}
		delete(ls.destination, from)
	}
	return true
}

// Rack moves the machine to a new racking. It reports whether the move
// was legal (within bounds and respecting every slack constraint); on
// failure ls is left unchanged. A no-op rack to the current value always
// succeeds and performs no braid work.
func (ls *LoopState) Rack(newRacking int) bool {
	if newRacking > ls.Machine.MaxRacking || newRacking < ls.Machine.MinRacking {
		return false
	}
	if newRacking == ls.Machine.Racking {
		return true
	}
	for _, c := range ls.Slack {
		if !c.Respected(*ls, newRacking) {
			return false
		}
	}

	n2 := ls.width2()
	positions := make([]int, n2) // positions[needle.ID()] = old rank
	j := 0
	for i := 0; i < n2; i++ {
		n := ls.Machine.NeedleAt(i)
		if ls.needleLoopCount(n) > 0 {
			positions[n.ID()] = j
			j++
		}
	}

	ls.Machine.Racking = newRacking

	strands := j
	f := make([]int, strands)
	j = 0
	for i := 0; i < n2; i++ {
		n := ls.Machine.NeedleAt(i)
		if ls.needleLoopCount(n) > 0 {
			f[j] = positions[n.ID()]
			j++
		}
	}

	ls.Braid = ls.Braid.LeftMultiply(f)
	return true
}

// Equal reports whether ls and other are the same search-graph node: same
// racking, same width, same per-needle loop counts on each bed, and equal
// braids. Which individual loop indices make up a needle's count is
// intentionally ignored, matching state.State.Equal's treatment of
// semantically equivalent states as the same node.
func (ls LoopState) Equal(other LoopState) bool {
	if ls.Machine.Racking != other.Machine.Racking || ls.Machine.Width != other.Machine.Width {
		return false
	}
	for i := 0; i < ls.Machine.Width; i++ {
		b := machine.NeedleLabel{Front: false, Index: i}
		f := machine.NeedleLabel{Front: true, Index: i}
		if ls.needleLoopCount(b) != other.needleLoopCount(b) {
			return false
		}
		if ls.needleLoopCount(f) != other.needleLoopCount(f) {
			return false
		}
	}
	return ls.Braid.Equal(other.Braid)
}

// hashSeed and hashCombine match state.go's combiner bit-for-bit, so
// equal states hash identically whichever representation computed them —
// useful once a caller round-trips through FromState/ToState mid-search.
const hashSeed uint64 = 0xf0e35c6e3c319f8

func hashCombine(h uint64, y uint64) uint64 {
	return h ^ (y + 0x5e7a3ddcc8414e72 + (h << 12) + (h >> 3))
}

// Hash returns the stable 64-bit hash used to key visited/cost maps,
// folding racking, every back-bed count by index, every front-bed count by
// index, and the braid's own hash — the same order state.State.Hash uses.
func (ls LoopState) Hash() uint64 {
	h := hashSeed
	h = hashCombine(h, uint64(int64(ls.Machine.Racking)))
	for i := 0; i < ls.Machine.Width; i++ {
		b := machine.NeedleLabel{Front: false, Index: i}
		h = hashCombine(h, uint64(int64(ls.needleLoopCount(b))))
	}
	for i := 0; i < ls.Machine.Width; i++ {
		f := machine.NeedleLabel{Front: true, Index: i}
		h = hashCombine(h, uint64(int64(ls.needleLoopCount(f))))
	}
	h = hashCombine(h, ls.Braid.Hash())
	return h
}

// Canonicalize mutates ls by transferring to front every aligned position
// where the front is empty and the back is occupied. It is a no-op (and
// returns false) when ls already equals its target; otherwise it
// performs the transfers and returns true.
func (ls *LoopState) Canonicalize() bool {
	if ls.target != nil && ls.Equal(*ls.target) {
		return false
	}

	r := ls.Machine.Racking
	lo, hi := 0, ls.Machine.Width
	if r > 0 {
		lo = r
	} else {
		hi = ls.Machine.Width + r
	}
	for i := lo; i < hi; i++ {
		back := machine.NeedleLabel{Front: false, Index: i - r}
		front := machine.NeedleLabel{Front: true, Index: i}
		if ls.needleLoopCount(back) > 0 && ls.needleLoopCount(front) == 0 {
			ls.Transfer(i, true)
		}
	}
	return true
}

// Backpointer records the predecessor state and command that produced a
// search node, mirroring KnittingStateLM21's Backpointer struct.
type Backpointer struct {
	Prev    LoopState
	Command string
}
