// Package state implements the knitting machine's state: two beds of loop
// counts and destinations, the current racking, the residual braid, and
// the slack constraints that must hold at every racking the state visits.
//
// Grounded on core/types.go's invariant-bearing constructor and
// core/methods*.go's small single-purpose mutators, adapted to a fixed
// two-bed layout instead of a general adjacency structure: a knitting
// state is not naturally a labeled graph, so this package models it as
// the value type spec.md §3 describes directly rather than forcing it
// through lvlath's Graph/Vertex/Edge abstraction.
package state
