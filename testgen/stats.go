package testgen

import (
	"sort"

	"github.com/knitplan/knitplan/planner"
	"github.com/knitplan/knitplan/state/loopstate"
)

// BatchStats aggregates a batch of search runs — the statistics report
// spec.md §2 item 9 calls for ("aggregates statistics") without detailing
// its shape: mean and median path length, search-tree node count, and
// wall-clock seconds, plus how many of the batch came back infeasible.
type BatchStats struct {
	Count            int
	Infeasible       int
	MeanPathLength   float64
	MedianPathLength float64
	MeanNodeCount    float64
	MedianNodeCount  float64
	MeanSeconds      float64
	MedianSeconds    float64
}

// Aggregate computes BatchStats over a batch of planner.SearchResult,
// excluding infeasible runs (PathLength == -1, a sentinel rather than a
// real length) from the length/node-count/seconds statistics.
func Aggregate(results []planner.SearchResult) BatchStats {
	var lengths, nodes, seconds []float64
	infeasible := 0
	for _, r := range results {
		if r.PathLength < 0 {
			infeasible++
			continue
		}
		lengths = append(lengths, float64(r.PathLength))
		nodes = append(nodes, float64(r.SearchTreeSize))
		seconds = append(seconds, r.SecondsTaken)
	}
	return buildStats(len(results), infeasible, lengths, nodes, seconds)
}

// AggregateLM21 is Aggregate's counterpart for state/loopstate's search
// results.
func AggregateLM21(results []loopstate.SearchResult) BatchStats {
	var lengths, nodes, seconds []float64
	infeasible := 0
	for _, r := range results {
		if r.PathLength < 0 {
			infeasible++
			continue
		}
		lengths = append(lengths, float64(r.PathLength))
		nodes = append(nodes, float64(r.SearchTreeSize))
		seconds = append(seconds, r.SecondsTaken)
	}
	return buildStats(len(results), infeasible, lengths, nodes, seconds)
}

func buildStats(count, infeasible int, lengths, nodes, seconds []float64) BatchStats {
	stats := BatchStats{Count: count, Infeasible: infeasible}
	stats.MeanPathLength, stats.MedianPathLength = meanMedian(lengths)
	stats.MeanNodeCount, stats.MedianNodeCount = meanMedian(nodes)
	stats.MeanSeconds, stats.MedianSeconds = meanMedian(seconds)
	return stats
}

func meanMedian(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return mean, median
}
