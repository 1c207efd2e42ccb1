package testgen

import (
	"math/rand"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/state"
)

// fillBed places count loops across a width-needle bed, following
// flat_lace's own two-phase strategy: first stride across the bed at a
// random skip of 1 or 2 needles so loops start out spread roughly evenly,
// then (if count exceeds what the stride covered) drop the remainder at
// uniformly random needles, respecting maxStack as the per-needle cap.
func fillBed(width, count, maxStack int, rng *rand.Rand) []int {
	bed := make([]int, width)
	remaining := count
	for i := 0; i < width && remaining > 0; i += 1 + rng.Intn(2) {
		bed[i]++
		remaining--
	}
	for remaining > 0 {
		i := rng.Intn(width)
		if bed[i] < maxStack {
			bed[i]++
			remaining--
		}
	}
	return bed
}

// chainSlack builds one SlackConstraint per adjacent pair of occupied
// needles on the given bed, limit 2 — flat_lace's own rule, which keeps
// consecutive loops on a cast-on row from drifting too far apart under
// racking.
func chainSlack(bed []int, front bool) []state.SlackConstraint {
	var out []state.SlackConstraint
	prev := -1
	for i, c := range bed {
		if c == 0 {
			continue
		}
		if prev >= 0 {
			out = append(out, state.SlackConstraint{
				Needle1: machine.NeedleLabel{Front: front, Index: prev},
				Needle2: machine.NeedleLabel{Front: front, Index: i},
				Limit:   2,
			})
		}
		prev = i
	}
	return out
}

// FlatLace reworks testgen.cpp's flat_lace: loopCount loops cast onto the
// front bed only, spread by fillBed, with a target layout allowing up to
// maxStack loops per needle and a chained slack constraint tying adjacent
// source loops together.
func FlatLace(m machine.Machine, loopCount, maxStack int, rng *rand.Rand) TestCase {
	sourceFront := fillBed(m.Width, loopCount, 1, rng)
	targetFront := fillBed(m.Width, loopCount, maxStack, rng)
	emptyBed := make([]int, m.Width)

	return New(m, emptyBed, sourceFront, emptyBed, targetFront, braid.Identity(loopCount), chainSlack(sourceFront, true))
}

// SimpleTube reworks testgen.cpp's simple_tube, left as a NotImplemented
// stub in the original: a circular cast-on puts loops on both beds at
// once (a flat piece knit in the round), one loop per needle on each
// side, each bed's source loops chained by the same slack rule flat_lace
// uses for its single bed.
func SimpleTube(m machine.Machine, backLoopCount, frontLoopCount int, rng *rand.Rand) TestCase {
	sourceBack := fillBed(m.Width, backLoopCount, 1, rng)
	sourceFront := fillBed(m.Width, frontLoopCount, 1, rng)
	targetBack := fillBed(m.Width, backLoopCount, 1, rng)
	targetFront := fillBed(m.Width, frontLoopCount, 1, rng)

	slack := append(chainSlack(sourceBack, false), chainSlack(sourceFront, true)...)

	return New(m, sourceBack, sourceFront, targetBack, targetFront, braid.Identity(backLoopCount+frontLoopCount), slack)
}
