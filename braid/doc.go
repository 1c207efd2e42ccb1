// Package braid implements the Artin braid group kernel that the planner's
// residual-braid heuristic depends on: element construction, left
// multiplication by a single-pass permutation factor, Garside reduction to
// left normal form, factor-list length, the underlying permutation and its
// inverse, and adjacent-strand merge/cancel.
//
// This stands in for the external CBraid kernel that the original source
// (original_source/knitting.h, class cb::ArtinBraid) treats as a collaborator
// contract rather than an implementation concern. A Go module has no such
// escape hatch, so this package implements the contract directly: every
// permutation of n strands is a Garside "simple element" under the classical
// Artin presentation (Tits' section w ↦ σ_w), so a braid built purely from
// per-pass permutation factors reduces to a left-greedy normal form by the
// standard local algorithm — repeatedly move a left descent of the later
// factor into the earlier one until the pair is left-weighted. That
// normal-form factor count is what FactorCount reports, and it is exactly
// what Garside theory calls the infimum-to-supremum word length, so it is a
// sound (not merely heuristic) lower bound on the number of simple factors
// still needed to reach the identity.
//
// What this package deliberately does not attempt: general braid-word
// equivalence outside the permutation-factor fragment actually produced by
// machine.Rack, negative/inverse generators, or link-invariant computation.
// The knitting planner never needs those; every factor recorded by a rack
// pass is, by construction, a positive permutation simple element.
package braid
