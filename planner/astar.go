package planner

import (
	"time"

	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/heuristic"
	"github.com/knitplan/knitplan/state"
)

// SearchResult is what both Astar and IDAstar return (spec.md §4.9): the
// command sequence, its total weight, the search tree size (for Astar the
// number of distinct states the search assigned a cost to; for IDAstar the
// number of nodes visited summed over every iteration), and wall-clock
// seconds spent searching.
// PathLength is -1 and Path is nil when no solution was found within
// limit.
type SearchResult struct {
	Path           []string
	PathLength     int
	SearchTreeSize int
	SecondsTaken   float64
}

// fromEntry is one back-pointer: the predecessor state and the command
// that produced the successor recorded against it.
type fromEntry struct {
	prev    state.State
	command string
}

// Astar runs a bucket-queue best-first search from sources to their
// shared target, using h as the lower-bound estimator and adjacent to
// enumerate each state's successors. Passing every feasible initial
// racking as a separate source lets the search pick the cheapest starting
// racking for free, per spec.md §4.9's "all_rackings" note.
func Astar(sources []state.State, h heuristic.Func, adjacent func(state.State) []enumerate.Transition, limit int) SearchResult {
	start := time.Now()

	g := make(map[uint64]int)
	fkey := make(map[uint64]int)
	from := make(map[uint64]fromEntry)

	q := &bucketQueue{}
	for _, src := range sources {
		hs := src.Hash()
		if _, ok := g[hs]; ok {
			continue
		}
		h0 := h(src)
		g[hs] = 0
		fkey[hs] = h0
		q.push(h0, src)
	}

	for {
		key, ok := q.frontKey()
		if !ok || key > limit {
			return SearchResult{PathLength: -1, SearchTreeSize: len(g), SecondsTaken: time.Since(start).Seconds()}
		}

		s, poppedKey, ok := q.popMin()
		if !ok {
			return SearchResult{PathLength: -1, SearchTreeSize: len(g), SecondsTaken: time.Since(start).Seconds()}
		}
		hs := s.Hash()
		if poppedKey != fkey[hs] {
			continue // stale entry: a cheaper key was pushed for hs since this one
		}

		if tgt := s.Target(); tgt != nil && s.Equal(*tgt) {
			return SearchResult{
				Path:           reconstruct(from, hs),
				PathLength:     g[hs],
				SearchTreeSize: len(g),
				SecondsTaken:   time.Since(start).Seconds(),
			}
		}

		for _, tr := range adjacent(s) {
			nh := tr.Next.Hash()
			gPrime := g[hs] + tr.Weight
			if cur, seen := g[nh]; seen && gPrime >= cur {
				continue
			}
			g[nh] = gPrime
			from[nh] = fromEntry{prev: s, command: tr.Command}
			newKey := gPrime + h(tr.Next)
			fkey[nh] = newKey
			q.push(newKey, tr.Next)
		}
	}
}

// reconstruct walks from's back-pointers from target back to a source
// (the first hash with no recorded predecessor), returning the commands
// in forward order.
func reconstruct(from map[uint64]fromEntry, target uint64) []string {
	var cmds []string
	cur := target
	for {
		fe, ok := from[cur]
		if !ok {
			break
		}
		cmds = append([]string{fe.command}, cmds...)
		cur = fe.prev.Hash()
	}
	return cmds
}
