// Package machine models a two-bed flat/tube knitting machine: its width,
// racking bounds, current racking, and the needle enumeration that
// reflects physical needle order at a given racking.
//
// Grounded on core/types.go's constructor-validates-invariants style
// (sentinel errors, no side effects on failure) and core/methods.go's
// small, single-purpose accessor methods.
package machine
