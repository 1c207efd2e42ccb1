package state

// AllRackings returns one State per racking in [MinRacking, MaxRacking]
// that respects every slack constraint, each left at that racking,
// leaving s itself untouched. Mirrors knitting.cpp's all_rackings():
// planner.Astar/IDAstar take this slice directly as their source set, so
// the search picks whichever starting racking is cheapest for free
// (spec.md §4.9's "all_rackings" note) instead of the caller guessing one.
func (s State) AllRackings() []State {
	var out []State
	for r := s.Machine.MinRacking; r <= s.Machine.MaxRacking; r++ {
		cand := s.Clone()
		if cand.Rack(r) {
			out = append(out, cand)
		}
	}
	return out
}

// AllCanonicalRackings is AllRackings with Canonicalize applied to each
// result, mirroring knitting.cpp's all_canonical_rackings().
func (s State) AllCanonicalRackings() []State {
	out := s.AllRackings()
	for i := range out {
		out[i].Canonicalize()
	}
	return out
}
