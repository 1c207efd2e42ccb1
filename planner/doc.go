// Package planner implements the two search algorithms that turn a source
// state and its attached target into a command sequence (spec.md §4.9,
// §4.10): Astar, a bucket-queue best-first search, and IDAstar, an
// iterative-deepening depth-first search. Both consume the same two
// contracts state.State already provides — equality (State.Equal) and hash
// (State.Hash) — plus a caller-supplied adjacency function (typically
// enumerate.Canonical) and heuristic.Func.
//
// Grounded on dijkstra/dijkstra.go's lazy-decrease-key priority queue
// (generalized here from a binary heap into a bucket queue keyed by
// integer f-value, since every edge weight is a small non-negative
// integer) and on tsp/bb.go's depth-first branch-and-bound (generalized
// into IDA*'s repeated bounded DFS). Astar accepts zero-weight edges (its
// bucket queue can grow leftward), so enumerate.Simple is a valid input to
// it. IDAstar relies on every adjacency edge costing at least 1, which
// holds for enumerate.Canonical; a zero-weight-edge adjacency
// (enumerate.Simple) is not a safe input to IDAstar since nothing then
// bounds its recursion depth.
package planner
