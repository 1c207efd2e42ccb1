package loopstate

import "time"

// SearchResult mirrors planner.SearchResult for the loop-centric
// representation.
type SearchResult struct {
	Path           []string
	PathLength     int
	SearchTreeSize int
	SecondsTaken   float64
}

type fromEntry struct {
	prev    LoopState
	command string
}

// bucketQueue duplicates planner's bucketQueue against LoopState, since
// Go has no shared generic across the two state representations in this
// module (see DESIGN.md's note on this package's Astar/IDAstar).
type bucketQueue struct {
	buckets [][]LoopState
	base    int
	count   int
}

func (q *bucketQueue) push(key int, s LoopState) {
	if len(q.buckets) == 0 {
		q.base = key
		q.buckets = [][]LoopState{{s}}
		q.count++
		return
	}
	if key < q.base {
		pad := make([][]LoopState, q.base-key)
		q.buckets = append(pad, q.buckets...)
		q.base = key
	}
	if idx := key - q.base; idx >= len(q.buckets) {
		q.buckets = append(q.buckets, make([][]LoopState, idx-len(q.buckets)+1)...)
	}
	idx := key - q.base
	q.buckets[idx] = append(q.buckets[idx], s)
	q.count++
}

func (q *bucketQueue) popMin() (LoopState, int, bool) {
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
	return LoopState{}, 0, false
}

func (q *bucketQueue) frontKey() (int, bool) {
	for i, b := range q.buckets {
		if len(b) > 0 {
			return q.base + i, true
		}
	}
	return 0, false
}

// Astar is planner.Astar's loop-centric counterpart: a bucket-queue
// best-first search from sources to their shared target.
func Astar(sources []LoopState, h Func, adjacent func(LoopState) []Transition, limit int) SearchResult {
	start := time.Now()

	g := make(map[uint64]int)
	fkey := make(map[uint64]int)
	from := make(map[uint64]fromEntry)

	q := &bucketQueue{}
	for _, src := range sources {
		hs := src.Hash()
		if _, ok := g[hs]; ok {
			continue
		}
		h0 := h(src)
		g[hs] = 0
		fkey[hs] = h0
		q.push(h0, src)
	}

	for {
		key, ok := q.frontKey()
		if !ok || key > limit {
			return SearchResult{PathLength: -1, SearchTreeSize: len(g), SecondsTaken: time.Since(start).Seconds()}
		}

		s, poppedKey, ok := q.popMin()
		if !ok {
			return SearchResult{PathLength: -1, SearchTreeSize: len(g), SecondsTaken: time.Since(start).Seconds()}
		}
		hs := s.Hash()
		if poppedKey != fkey[hs] {
			continue
		}

		if tgt := s.target; tgt != nil && s.Equal(*tgt) {
			return SearchResult{
				Path:           reconstruct(from, hs),
				PathLength:     g[hs],
				SearchTreeSize: len(g),
				SecondsTaken:   time.Since(start).Seconds(),
			}
		}

		for _, tr := range adjacent(s) {
			nh := tr.Next.Hash()
			gPrime := g[hs] + tr.Weight
			if cur, seen := g[nh]; seen && gPrime >= cur {
				continue
			}
			g[nh] = gPrime
			from[nh] = fromEntry{prev: s, command: tr.Command}
			newKey := gPrime + h(tr.Next)
			fkey[nh] = newKey
			q.push(newKey, tr.Next)
		}
	}
}

func reconstruct(from map[uint64]fromEntry, target uint64) []string {
	var cmds []string
	cur := target
	for {
		fe, ok := from[cur]
		if !ok {
			break
		}
		cmds = append([]string{fe.command}, cmds...)
		cur = fe.prev.Hash()
	}
	return cmds
}

// IDAstar is planner.IDAstar's loop-centric counterpart.
func IDAstar(sources []LoopState, h Func, adjacent func(LoopState) []Transition, limit int) SearchResult {
	start := time.Now()

	nodeCount := 0
	for bound := 1; bound <= limit; bound++ {
		for _, src := range sources {
			var path []string
			pathLength, found := dfs(src, 0, bound, &path, &nodeCount, h, adjacent)
			if found {
				return SearchResult{
					Path:           path,
					PathLength:     pathLength,
					SearchTreeSize: nodeCount,
					SecondsTaken:   time.Since(start).Seconds(),
				}
			}
		}
	}

	return SearchResult{PathLength: -1, SearchTreeSize: nodeCount, SecondsTaken: time.Since(start).Seconds()}
}

func dfs(s LoopState, g int, bound int, path *[]string, nodeCount *int, h Func, adjacent func(LoopState) []Transition) (int, bool) {
	*nodeCount++

	if tgt := s.target; tgt != nil && s.Equal(*tgt) {
		return g, true
	}

	for _, tr := range adjacent(s) {
		ng := g + tr.Weight
		if ng+h(tr.Next) > bound {
			continue
		}
		*path = append(*path, tr.Command)
		if pathLength, found := dfs(tr.Next, ng, bound, path, nodeCount, h, adjacent); found {
			return pathLength, true
		}
		*path = (*path)[:len(*path)-1]
	}

	return 0, false
}
