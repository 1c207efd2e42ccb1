package httpdriver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitplan/knitplan/config"
)

func fixedRackingConfig() config.PlannerConfig {
	return config.PlannerConfig{
		Machine:   config.MachineConfig{Width: 3, MinRacking: 0, MaxRacking: 0, Racking: 0},
		Heuristic: "braid",
	}
}

func postPlan(t *testing.T, s *Server, req PlanRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httpReq)
	return rec
}

func TestHandlePlan_SingleLoopTransfer(t *testing.T) {
	s := NewServer(":0", fixedRackingConfig(), nil)

	rec := postPlan(t, s, PlanRequest{
		SourceBack:  []int{0, 0, 1},
		SourceFront: []int{0, 0, 0},
		TargetBack:  []int{0, 0, 0},
		TargetFront: []int{0, 0, 1},
		Limit:       10,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.PathLength)
	assert.Equal(t, []string{"xfer f2"}, resp.Path)
}

func TestHandlePlan_CanonicalizeFindsItForFree(t *testing.T) {
	s := NewServer(":0", fixedRackingConfig(), nil)

	rec := postPlan(t, s, PlanRequest{
		SourceBack:   []int{0, 0, 1},
		SourceFront:  []int{0, 0, 0},
		TargetBack:   []int{0, 0, 0},
		TargetFront:  []int{0, 0, 1},
		Canonicalize: true,
		Limit:        10,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.PathLength)
	assert.Empty(t, resp.Path)
}

func TestHandlePlan_RejectsMismatchedStrandCount(t *testing.T) {
	s := NewServer(":0", fixedRackingConfig(), nil)

	rec := postPlan(t, s, PlanRequest{
		SourceBack:  []int{0, 0, 1},
		SourceFront: []int{0, 0, 0},
		TargetBack:  []int{0, 0, 0},
		TargetFront: []int{0, 1, 1},
		Limit:       10,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMismatchedStrandCount.Error())
}

func TestHandlePlan_RejectsUnknownHeuristic(t *testing.T) {
	s := NewServer(":0", fixedRackingConfig(), nil)

	rec := postPlan(t, s, PlanRequest{
		SourceBack:  []int{0, 0, 1},
		SourceFront: []int{0, 0, 0},
		TargetBack:  []int{0, 0, 0},
		TargetFront: []int{0, 0, 1},
		Heuristic:   "not-a-real-heuristic",
		Limit:       10,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePlan_RejectsMalformedJSON(t *testing.T) {
	s := NewServer(":0", fixedRackingConfig(), nil)

	httpReq := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
