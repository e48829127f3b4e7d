package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/aspectpath/pkg/buildinfo"
	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/render/nodelink"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// =============================================================================
// Meta
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type aspectInfo struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Weight float64  `json:"weight"`
	Title  string   `json:"title"`
	Recipe []string `json:"recipe,omitempty"`
}

func (s *Server) handleAspects(w http.ResponseWriter, r *http.Request) {
	g := s.runner.Graph
	out := make([]aspectInfo, 0, len(g.Aspects()))
	for _, a := range g.Aspects() {
		weight, _ := g.Weight(a)
		out = append(out, aspectInfo{
			ID:     a,
			Kind:   g.Kind(a).String(),
			Weight: weight,
			Title:  s.runner.Data.Title(a),
			Recipe: g.Recipe(a),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Solving
// =============================================================================

type solveRequest struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Distance  int      `json:"distance"`
	Preferred []string `json:"preferred"`
	Strategy  string   `json:"strategy"`
}

type solveResponse struct {
	Problem  solver.Problem  `json:"problem"`
	Solution solver.Solution `json:"solution"`
	Cached   bool            `json:"cached"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	strategy, err := solver.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	pref, err := preferredSet(req.Preferred)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.SolveTimeout)
	defer cancel()

	p := solver.Problem{Start: req.Start, End: req.End, Distance: req.Distance}
	sol, cached, err := s.runner.Solve(ctx, p, pref, solver.SearchOptions{Strategy: strategy})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{Problem: p, Solution: sol, Cached: cached})
}

type planRequest struct {
	Path      []string `json:"path"`
	Preferred []string `json:"preferred"`
	Refresh   bool     `json:"refresh"`
	Strategy  string   `json:"strategy"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	strategy, err := solver.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	pref, err := preferredSet(req.Preferred)
	if err != nil {
		writeError(w, err)
		return
	}
	s.plan(w, r, planner.Request{
		Path:      req.Path,
		Preferred: pref,
		Refresh:   req.Refresh,
		Strategy:  strategy,
	})
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request, req planner.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.SolveTimeout)
	defer cancel()

	res, err := s.runner.Plan(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func preferredSet(aspects []string) (solver.Preferred, error) {
	for _, a := range aspects {
		if err := apperrors.ValidateIdentifier(a); err != nil {
			return solver.Preferred{}, err
		}
	}
	return solver.NewPreferred(aspects...), nil
}

// =============================================================================
// Graph
// =============================================================================

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := splitList(q.Get("path"))
	pref, err := preferredSet(splitList(q.Get("preferred")))
	if err != nil {
		writeError(w, err)
		return
	}
	only, _ := strconv.ParseBool(q.Get("only"))

	opts := nodelink.Options{
		Preferred:     pref,
		Weights:       true,
		Title:         s.runner.Data.Title,
		HighlightOnly: only,
	}
	if len(path) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), s.opts.SolveTimeout)
		defer cancel()
		res, err := s.runner.Plan(ctx, planner.Request{Path: path, Preferred: pref})
		if err != nil {
			writeError(w, err)
			return
		}
		for _, step := range res.Steps {
			if step.Solution.Found() {
				opts.Highlight = append(opts.Highlight, step.Solution.Path)
			}
		}
	}

	svg, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(s.runner.Graph, opts))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Sessions
// =============================================================================

type sessionRequest struct {
	Path      []string `json:"path"`
	Preferred []string `json:"preferred"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.runner.Validate(req.Path, ""); err != nil {
		writeError(w, err)
		return
	}
	if _, err := preferredSet(req.Preferred); err != nil {
		writeError(w, err)
		return
	}

	sess := session.New(s.opts.SessionTTL)
	sess.SetPath(req.Path)
	for _, a := range req.Preferred {
		sess.Prefer(a)
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := session.MustExist(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.loadSession(w, r); ok {
		writeJSON(w, http.StatusOK, sess)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSessionID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetPath(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req sessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.runner.Validate(req.Path, ""); err != nil {
		writeError(w, err)
		return
	}
	sess.SetPath(req.Path)
	s.save(w, r, sess)
}

func (s *Server) handleTogglePreferred(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	aspect := chi.URLParam(r, "aspect")
	if !s.runner.Graph.IsValid(aspect) {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidAspect, "invalid aspect provided: %q", aspect))
		return
	}
	sess.Toggle(aspect)
	s.save(w, r, sess)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSessionPlan(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.plan(w, r, planner.Request{Path: sess.Path, Preferred: sess.Preferences()})
}
