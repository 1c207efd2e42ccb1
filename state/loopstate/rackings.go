package loopstate

// AllRackings is state.State.AllRackings's loop-centric counterpart: one
// LoopState per racking in [MinRacking, MaxRacking] that respects every
// slack constraint, leaving ls itself untouched.
func (ls LoopState) AllRackings() []LoopState {
	var out []LoopState
	for r := ls.Machine.MinRacking; r <= ls.Machine.MaxRacking; r++ {
		cand := ls.Clone()
		if cand.Rack(r) {
			out = append(out, cand)
		}
	}
	return out
}

// AllCanonicalRackings is AllRackings with Canonicalize applied to each
// result.
func (ls LoopState) AllCanonicalRackings() []LoopState {
	out := ls.AllRackings()
	for i := range out {
		out[i].Canonicalize()
	}
	return out
}
