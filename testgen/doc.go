// Package testgen implements testgen.cpp/testgen.h's generators and test
// harness: TestCase wraps a source/target pair plus slack constraints and
// runs a planner against them three ways — Test (package planner's A*),
// TestID (package planner's IDA*), and TestLM21 (state/loopstate's
// parallel search over the loop-centric representation) — mirroring
// TestCase::test/test_id/test_lm21. FlatLace and SimpleTube are Go
// reworkings of testgen.cpp's flat_lace/simple_tube generators; the
// original leaves simple_tube as a NotImplemented stub, so its generator
// here is new work following flat_lace's own two-phase fill shape rather
// than a completed transcription.
//
// Grounded on tsp/rng.go for its deterministic *rand.Rand-as-parameter
// convention — generators here take an *rand.Rand rather than reaching
// for a package-level source, so a test can reproduce any case bit for
// bit by reusing the same seed.
package testgen
