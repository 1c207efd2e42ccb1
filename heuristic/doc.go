// Package heuristic implements the admissible lower-bound estimators used
// by package planner's A* and IDA* searches (spec.md §4.7): No, Target,
// Braid, Log, and Prebuilt, plus Combine for the braid⊕log/braid⊕prebuilt
// maxima. Each estimator is a func(state.State) int; composing two
// admissible estimators with max stays admissible, so Combine is provided
// as a small variadic helper rather than duplicated at each call site.
//
// Grounded on dijkstra/dijkstra.go's heuristic-as-plain-function style
// (lvlath's Dijkstra takes no heuristic; the A*-shaped estimator plumbing
// here instead follows tsp/bb.go's bound function passed alongside search
// state) and on original_source/knitting.cpp's offset-signature and
// prebuilt-table estimators.
package heuristic
