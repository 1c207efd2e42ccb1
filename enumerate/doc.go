// Package enumerate implements the transition enumerator (spec.md §4.5):
// given a state, it lazily-in-spirit (materialized here as a slice, since
// knitting-scale state spaces are small enough that eager enumeration is
// simpler and no less deterministic) produces every legal one-step move as
// a (next state, weight, command) triple.
//
// Two flavors share the same output shape: Simple is the baseline —
// independent weight-1 rackings and weight-0 transfers — and Canonical is
// the transfer-set-then-racking enumeration used in practice, grounded on
// original_source/knitting.cpp's single TransitionIterator (which always
// builds a transfer-set and then racks; the "simple" vs "canonical" split
// in spec.md corresponds there to whether canonicalize() is invoked after
// racking, governing the weight-2 bonus).
package enumerate
