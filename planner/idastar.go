package planner

import (
	"time"

	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/heuristic"
	"github.com/knitplan/knitplan/state"
)

// IDAstar runs iterative-deepening depth-first search: for bound = 1, 2,
// …, up to limit, it depth-first-searches from each source, expanding a
// successor only when its g+h does not exceed bound (spec.md §4.10).
// Grounded on tsp/bb.go's recursive branch-and-bound; a recursive DFS
// plays the role of bb.go's explicit frame stack, since every edge here
// costs at least 1 and so bounds recursion depth by bound itself.
func IDAstar(sources []state.State, h heuristic.Func, adjacent func(state.State) []enumerate.Transition, limit int) SearchResult {
	start := time.Now()

	nodeCount := 0
	for bound := 1; bound <= limit; bound++ {
		for _, src := range sources {
			var path []string
			pathLength, found := dfs(src, 0, bound, &path, &nodeCount, h, adjacent)
			if found {
				return SearchResult{
					Path:           path,
					PathLength:     pathLength,
					SearchTreeSize: nodeCount,
					SecondsTaken:   time.Since(start).Seconds(),
				}
			}
		}
	}

	return SearchResult{PathLength: -1, SearchTreeSize: nodeCount, SecondsTaken: time.Since(start).Seconds()}
}

// dfs explores s at accumulated cost g under threshold bound, appending
// commands onto path as it descends and popping them back off on
// backtrack. Returns the path length reached and whether s's subtree
// contains the target.
func dfs(s state.State, g int, bound int, path *[]string, nodeCount *int, h heuristic.Func, adjacent func(state.State) []enumerate.Transition) (int, bool) {
	*nodeCount++

	if tgt := s.Target(); tgt != nil && s.Equal(*tgt) {
		return g, true
	}

	for _, tr := range adjacent(s) {
		ng := g + tr.Weight
		if ng+h(tr.Next) > bound {
			continue
		}
		*path = append(*path, tr.Command)
		if pathLength, found := dfs(tr.Next, ng, bound, path, nodeCount, h, adjacent); found {
			return pathLength, true
		}
		*path = (*path)[:len(*path)-1]
	}

	return 0, false
}
