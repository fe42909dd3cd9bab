package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/cache"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/layout"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/pipeline"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/render"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/store"
)

// maxBodyBytes bounds request bodies; call graphs above this are rejected.
const maxBodyBytes = 32 << 20

// layoutRequest is the body for layout, render, and save requests.
type layoutRequest struct {
	Name     string          `json:"name,omitempty"`
	Graph    graph.Graph     `json:"graph"`
	Strategy layout.Strategy `json:"strategy,omitempty"`
	Format   string          `json:"format,omitempty"`
	Detailed bool            `json:"detailed,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	l, err := s.computeLayout(r, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	format := req.Format
	if format == "" {
		format = render.FormatSVG
	}

	opts := pipeline.Options{
		Graph:    &req.Graph,
		Strategy: req.Strategy,
		Formats:  []string{format},
		Detailed: req.Detailed,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "layout store is not configured"})
		return
	}
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	l, err := s.computeLayout(r, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	graphHash := ""
	if data, err := graph.MarshalGraph(req.Graph); err == nil {
		graphHash = cache.Hash(data)
	}
	rec := store.NewRecord(req.Name, graphHash, l)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "layout store is not configured"})
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "layout store is not configured"})
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "layout store is not configured"})
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// computeLayout runs the load and layout stages for an API request.
func (s *Server) computeLayout(r *http.Request, req layoutRequest) (graph.Layout, error) {
	opts := pipeline.Options{
		Graph:    &req.Graph,
		Strategy: req.Strategy,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	}
	g, err := pipeline.Load(opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return s.runner.ComputeLayout(r.Context(), g, opts)
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (layoutRequest, bool) {
	var req layoutRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  string(errors.ErrCodeInvalidInput),
		})
		return layoutRequest{}, false
	}
	return req, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case err == store.ErrNotFound, code == errors.ErrCodeNotFound,
		code == errors.ErrCodeFileNotFound, code == errors.ErrCodeLayoutNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidGraph,
		code == errors.ErrCodeInvalidStrategy, code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case code == errors.ErrCodeCacheBackend, code == errors.ErrCodeStoreBackend:
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func contentType(format string) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}
