package machine

import (
	"errors"
	"strconv"
)

// Sentinel errors for Machine construction.
var (
	// ErrInvalidMachine indicates racking bounds reach or exceed the
	// machine width.
	ErrInvalidMachine = errors.New("machine: racking bounds exceed width")

	// ErrInvalidRacking indicates the initial racking lies outside
	// [MinRacking, MaxRacking].
	ErrInvalidRacking = errors.New("machine: initial racking out of bounds")
)

// NeedleLabel identifies one of the 2*Width needles on a machine: a bed
// (Front true/false) and an index within that bed.
type NeedleLabel struct {
	Front bool
	Index int
}

// ID returns the needle's stable numeric identity, used to key
// position-tracking maps across a racking change: 2*Index+1 on the front
// bed, 2*Index on the back bed.
func (n NeedleLabel) ID() int {
	if n.Front {
		return 2*n.Index + 1
	}
	return 2 * n.Index
}

// Location returns the needle's physical location at the given racking:
// Index on the front bed, Index+racking on the back bed.
func (n NeedleLabel) Location(racking int) int {
	if n.Front {
		return n.Index
	}
	return n.Index + racking
}

// Offset returns this needle's horizontal offset from other, in units of
// needle spacing, at racking=0 (i.e. measured in each needle's own bed
// index space): Index - other.Index when other is on the front bed,
// other.Index - Index when other is on the back bed.
func (n NeedleLabel) Offset(other NeedleLabel) int {
	if other.Front {
		return n.Index - other.Index
	}
	return other.Index - n.Index
}

func (n NeedleLabel) String() string {
	bed := byte('b')
	if n.Front {
		bed = 'f'
	}
	return string(bed) + strconv.Itoa(n.Index)
}

// Machine is a two-bed knitting machine of fixed width and racking bounds.
type Machine struct {
	Width      int
	MinRacking int
	MaxRacking int
	Racking    int
}

// New validates and constructs a Machine.
func New(width, minRacking, maxRacking, racking int) (Machine, error) {
	if maxRacking >= width || minRacking <= -width {
		return Machine{}, ErrInvalidMachine
	}
	if racking > maxRacking || racking < minRacking {
		return Machine{}, ErrInvalidRacking
	}
	return Machine{Width: width, MinRacking: minRacking, MaxRacking: maxRacking, Racking: racking}, nil
}

// NeedleAt implements the needle interleaving rule: at racking r, indices
// below |r| are all on one bed (front if r>0, else back); indices at or
// above 2*Width-|r| are all on the other bed; the remaining indices
// alternate back/front.
func (m Machine) NeedleAt(i int) NeedleLabel {
	r := m.Racking
	abs := r
	if abs < 0 {
		abs = -abs
	}

	if i < abs {
		return NeedleLabel{Front: r > 0, Index: i}
	}
	if i >= 2*m.Width-abs {
		return NeedleLabel{Front: r < 0, Index: i - m.Width}
	}

	i -= abs
	if i%2 == 0 {
		if r > 0 {
			return NeedleLabel{Front: false, Index: i / 2}
		}
		return NeedleLabel{Front: false, Index: i/2 - r}
	}
	if r > 0 {
		return NeedleLabel{Front: true, Index: i/2 + r}
	}
	return NeedleLabel{Front: true, Index: i / 2}
}

// WithRacking returns a copy of m at the given racking, without validating
// it against [MinRacking, MaxRacking] — callers that need validation
// should use state.State.Rack, which also enforces slack constraints.
func (m Machine) WithRacking(r int) Machine {
	m.Racking = r
	return m
}
