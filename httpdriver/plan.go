package httpdriver

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/planner"
	"github.com/knitplan/knitplan/state"
)

// ErrMismatchedStrandCount is returned when a PlanRequest's source and
// target beds hold different numbers of occupied needles — the two ends
// of a plan must carry the same loops, just rearranged.
var ErrMismatchedStrandCount = errors.New("httpdriver: source and target occupy a different number of needles")

// PlanRequest is POST /plan's JSON payload: a source/target bed layout on
// the server's configured machine, plus which heuristic and adjacency
// mode to search with. Heuristic overrides the server's configured
// default when non-empty.
type PlanRequest struct {
	SourceBack   []int  `json:"source_back"`
	SourceFront  []int  `json:"source_front"`
	TargetBack   []int  `json:"target_back"`
	TargetFront  []int  `json:"target_front"`
	Heuristic    string `json:"heuristic"`
	Canonicalize bool   `json:"canonicalize"`
	Limit        int    `json:"limit"`
}

// PlanResponse is POST /plan's JSON response, planner.SearchResult
// rendered as wire types.
type PlanResponse struct {
	Path           []string `json:"path"`
	PathLength     int      `json:"path_length"`
	SearchTreeSize int      `json:"search_tree_size"`
	SecondsTaken   float64  `json:"seconds_taken"`
}

func countOccupied(beds ...[]int) int {
	n := 0
	for _, bed := range beds {
		for _, c := range bed {
			if c > 0 {
				n++
			}
		}
	}
	return n
}

// handlePlan decodes a PlanRequest, runs one A* planning call under mu,
// and writes back a PlanResponse.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.plan(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) plan(req PlanRequest) (PlanResponse, error) {
	m, err := s.cfg.BuildMachine()
	if err != nil {
		return PlanResponse{}, errors.Wrap(err, "httpdriver: building machine")
	}

	sourceStrands := countOccupied(req.SourceBack, req.SourceFront)
	targetStrands := countOccupied(req.TargetBack, req.TargetFront)
	if sourceStrands != targetStrands {
		return PlanResponse{}, ErrMismatchedStrandCount
	}

	tgt := state.New(m, req.TargetBack, req.TargetFront, braid.Identity(targetStrands), nil)
	src := state.New(m, req.SourceBack, req.SourceFront, braid.Identity(sourceStrands), nil)
	if err := src.SetTarget(&tgt); err != nil {
		return PlanResponse{}, errors.Wrap(err, "httpdriver: setting target")
	}

	heuristicName := req.Heuristic
	if heuristicName == "" {
		heuristicName = s.cfg.Heuristic
	}
	h, err := config.ResolveHeuristic(heuristicName, s.tbl)
	if err != nil {
		return PlanResponse{}, errors.Wrap(err, "httpdriver: resolving heuristic")
	}

	adjacent := enumerate.Simple
	sources := src.AllRackings()
	if req.Canonicalize {
		adjacent = enumerate.Canonical
		sources = src.AllCanonicalRackings()
	}

	s.resetProgress()
	counted := func(cur state.State) []enumerate.Transition {
		s.bumpProgress()
		return adjacent(cur)
	}

	result := planner.Astar(sources, h, counted, req.Limit)
	return PlanResponse{
		Path:           result.Path,
		PathLength:     result.PathLength,
		SearchTreeSize: result.SearchTreeSize,
		SecondsTaken:   result.SecondsTaken,
	}, nil
}
