// Package prebuilt implements a memoized, antichain-pruned reachability
// table over the offsets signature: for each loop-bearing needle, one bit
// recording whether it still sits away from its destination needle. A
// signature of all zero bits means the state is already resolved.
//
// The table's distance model treats one search step as able to resolve
// every needle within a single contiguous run of set bits at once — the
// optimistic idealization of one racking-plus-canonicalize pass clearing
// whatever a single alignment window covers. This is deliberately generous
// (real stacking/slack constraints can make a run harder to clear than
// one step), which keeps every distance it reports an admissible lower
// bound rather than an exact cost.
//
// Grounded on original_source/knitting.cpp's prebuilt distance table for
// the signature/racking keying scheme; the antichain-pruned slice storage
// below it has no direct teacher analogue and is this package's own.
package prebuilt
