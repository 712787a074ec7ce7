package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dutyflow/pkg/buildinfo"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/httputil"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/session"
)

// SolveResponse is the body of a successful solve.
type SolveResponse struct {
	Plan        *roster.Plan `json:"plan"`
	InputHash   string       `json:"input_hash"`
	CacheHit    bool         `json:"cache_hit"`
	SolveTimeMS float64      `json:"solve_time_ms"`
}

// WhatIfRequest is a solve request plus the dates to compare.
type WhatIfRequest struct {
	pipeline.Options
	Dates []roster.Date `json:"dates"`
}

// WhatIfResponse lists one scenario per requested date, in request order.
type WhatIfResponse struct {
	Scenarios []pipeline.Scenario `json:"scenarios"`
}

// CreateWorkspaceRequest saves State under Name. With Solve set the plan is
// computed and stored alongside.
type CreateWorkspaceRequest struct {
	Name  string           `json:"name"`
	State *pkgio.SaveState `json:"state"`
	Solve bool             `json:"solve,omitempty"`
}

// WorkspaceList is the body of GET /v1/workspaces.
type WorkspaceList struct {
	Workspaces []session.Summary `json:"workspaces"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Current()})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := httputil.DecodeJSON(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.solveOptions(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) whatIf(w http.ResponseWriter, r *http.Request) {
	var req WhatIfRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	limit := s.MaxWhatIfDates
	if limit <= 0 {
		limit = DefaultMaxWhatIfDates
	}
	if len(req.Dates) > limit {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "%d dates requested, at most %d allowed", len(req.Dates), limit))
		return
	}
	s.applyDefaults(&req.Options)
	scenarios, err := s.Runner.WhatIf(r.Context(), req.Options, req.Dates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WhatIfResponse{Scenarios: scenarios})
}

func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []session.Summary{}
	}
	httputil.WriteJSON(w, http.StatusOK, WorkspaceList{Workspaces: list})
}

func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.State == nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "state is required"))
		return
	}
	if err := errors.ValidateName("workspace", req.Name); req.Name != "" && err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.State.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	ws, err := session.New(req.Name, req.State, s.WorkspaceTTL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Solve {
		res, err := s.solveOptions(r.Context(), pipeline.Options{Input: req.State.Input()})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		ws.Plan = res.Plan
	}
	if err := s.Store.Set(r.Context(), ws); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("workspace created", "id", ws.ID, "people", len(ws.State.People), "teams", len(ws.State.Teams))
	w.Header().Set("Location", "/v1/workspaces/"+ws.ID)
	httputil.WriteJSON(w, http.StatusCreated, ws)
}

func (s *Server) getWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ws)
}

func (s *Server) solveWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.solveOptions(r.Context(), pipeline.Options{Input: ws.State.Input()})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ws.Plan = res.Plan
	if err := s.Store.Set(r.Context(), ws); err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ws)
}

func (s *Server) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// workspace loads the workspace named by the {id} route parameter.
func (s *Server) workspace(r *http.Request) (*session.Workspace, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		return nil, err
	}
	ws, err := s.Store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %s not found", id)
	}
	return ws, nil
}

func (s *Server) solveOptions(ctx context.Context, opts pipeline.Options) (*SolveResponse, error) {
	s.applyDefaults(&opts)
	res, err := s.Runner.Solve(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SolveResponse{
		Plan:        res.Plan,
		InputHash:   res.InputHash,
		CacheHit:    res.CacheInfo.PlanHit,
		SolveTimeMS: float64(res.Stats.SolveTime) / float64(time.Millisecond),
	}, nil
}

// applyDefaults fills the fields a request left unset from s.Defaults.
func (s *Server) applyDefaults(opts *pipeline.Options) {
	if opts.Weights == nil && s.Defaults.Weights != nil {
		w := *s.Defaults.Weights
		opts.Weights = &w
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = s.Defaults.MaxIterations
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "request timed out")
	}
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "err", err,
			"request_id", httputil.RequestIDFrom(r.Context()))
		return
	}
	s.Logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
}
