package state

import "github.com/knitplan/knitplan/machine"

// SlackConstraint bounds the horizontal separation between two needles at
// any racking the state may visit: |loc1(r) - loc2(r)| must never exceed
// Limit.
type SlackConstraint struct {
	Needle1 machine.NeedleLabel
	Needle2 machine.NeedleLabel
	Limit   int
}

// Respected reports whether the constraint holds at the given racking.
func (c SlackConstraint) Respected(racking int) bool {
	d := c.Needle1.Location(racking) - c.Needle2.Location(racking)
	if d < 0 {
		d = -d
	}
	return d <= c.Limit
}

// Replace rewrites any endpoint equal to from into to — used when a
// transfer moves loops, and the needle that used to carry them no longer
// does.
func (c *SlackConstraint) Replace(from, to machine.NeedleLabel) {
	if c.Needle1 == from {
		c.Needle1 = to
	}
	if c.Needle2 == from {
		c.Needle2 = to
	}
}
