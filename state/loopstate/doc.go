// Package loopstate implements the loop-centric alternative to package
// state's needle-centric KnittingState: LoopState tracks one
// machine.NeedleLabel per physical loop (Locations), rather than one
// count per needle. It completes original_source/knitting_lm21.cpp's
// KnittingStateLM21, whose loop_locations field and LoopSlackConstraint
// this package's types are named after — most of that file's method
// bodies are left as stubs (NotImplemented) in the original, so the
// operations below are new work grounded on its field shapes and on
// state/state.go's already-complete transfer/rack/canonicalize
// discipline, not a transcription of working C++.
//
// One deliberate divergence from knitting_lm21.cpp: its can_transfer only
// checks that at least one side of an aligned position is occupied, with
// no destination-agreement or mergeability check before stacking two
// occupied needles. Copying that literally would let LoopState stack
// loops destined for different needles, which state.State's CanTransfer
// forbids. LoopState's CanTransfer/Transfer use the same
// destination-agreement-plus-CanMerge discipline as state.State instead.
//
// FromState and ToState bridge the two representations: a LoopState built
// by FromState reproduces a state.State's needle occupancy and braid
// exactly, loop-by-loop in current machine rank order; ToState collapses
// back to per-needle counts. Conversion is lossy in one direction only —
// once distinct loops merge into one needle's count, ToState cannot
// un-merge them — matching loop_locations' own granularity limit in the
// original.
package loopstate
