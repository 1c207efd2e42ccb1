package httpdriver

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/prebuilt"
)

// Server serves a single knitting-machine planner over HTTP: POST /plan
// runs one plan, GET /progress streams its node-expansion count.
type Server struct {
	addr string
	cfg  config.PlannerConfig
	tbl  *prebuilt.Table

	// mu serializes planning calls: spec.md §1's Non-goal rules out
	// concurrent planning jobs, so a request arriving mid-plan simply
	// waits its turn rather than running alongside the active one.
	mu sync.Mutex

	// progress counts adjacency expansions for the currently (or most
	// recently) running plan; handleProgress polls it.
	progress uint64
}

// NewServer builds a Server bound to addr, using cfg for machine geometry
// and heuristic resolution. tbl may be nil unless cfg.Heuristic needs a
// prebuilt table.
func NewServer(addr string, cfg config.PlannerConfig, tbl *prebuilt.Table) *Server {
	return &Server{addr: addr, cfg: cfg, tbl: tbl}
}

// Router builds the gorilla/mux router this server answers on.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/plan", s.handlePlan).Methods(http.MethodPost)
	r.HandleFunc("/progress", s.handleProgress).Methods(http.MethodGet)
	return r
}

// Serve blocks, answering requests on addr until the process is killed or
// the listener errors.
func (s *Server) Serve() error {
	if err := http.ListenAndServe(s.addr, s.Router()); err != nil {
		return errors.Wrap(err, "httpdriver: serve")
	}
	return nil
}

func (s *Server) resetProgress() {
	atomic.StoreUint64(&s.progress, 0)
}

func (s *Server) bumpProgress() {
	atomic.AddUint64(&s.progress, 1)
}

func (s *Server) readProgress() uint64 {
	return atomic.LoadUint64(&s.progress)
}
