package planner

import "github.com/knitplan/knitplan/state"

// bucketQueue is a priority queue over small non-negative or negative
// integer keys, one dense bucket per key, grounded on dijkstra.go's
// nodePQ except traded for a bucket array: f-values here are bounded by
// limit and move in increments of whole edge weights, so a bucket array
// beats a binary heap's log factor. Supports prepending buckets to the
// left of the current minimum, per spec.md §4.9's edge case for
// admissible-but-inconsistent heuristics.
type bucketQueue struct {
	buckets [][]state.State // buckets[i] holds states queued at key base+i
	base    int
	count   int
}

// push inserts s at key. Grows the bucket array rightward or, if key is
// below the current minimum, leftward (the leftward-prepend case).
func (q *bucketQueue) push(key int, s state.State) {
	if len(q.buckets) == 0 {
		q.base = key
		q.buckets = [][]state.State{{s}}
		q.count++
		return
	}
	if key < q.base {
		pad := make([][]state.State, q.base-key)
		q.buckets = append(pad, q.buckets...)
		q.base = key
	}
	if idx := key - q.base; idx >= len(q.buckets) {
		q.buckets = append(q.buckets, make([][]state.State, idx-len(q.buckets)+1)...)
	}
	idx := key - q.base
	q.buckets[idx] = append(q.buckets[idx], s)
	q.count++
}

// popMin removes and returns a state from the lowest non-empty bucket,
// along with the key it was stored at. Lazy: a popped entry may be stale
// (a cheaper key was pushed for the same state after this entry), which
// the caller detects by comparing the returned key against its own
// best-known fkey map, following dijkstra.go's lazy-decrease-key pattern.
func (q *bucketQueue) popMin() (state.State, int, bool) {
	for len(q.buckets) > 0 {
		if len(q.buckets[0]) == 0 {
			q.buckets = q.buckets[1:]
			q.base++
			continue
		}
		b := q.buckets[0]
		n := len(b)
		s := b[n-1]
		q.buckets[0] = b[:n-1]
		q.count--
		return s, q.base, true
	}
	return state.State{}, 0, false
}

// frontKey returns the key of the lowest non-empty bucket, if any.
func (q *bucketQueue) frontKey() (int, bool) {
	for i, b := range q.buckets {
		if len(b) > 0 {
			return q.base + i, true
		}
	}
	return 0, false
}

// empty reports whether the queue holds no entries.
func (q *bucketQueue) empty() bool { return q.count == 0 }
