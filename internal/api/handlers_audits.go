package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
	"github.com/ghamerly/problem-style-check/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type createAuditRequest struct {
	// Root is the directory containing the problem packages to audit.
	Root string `json:"root"`
	// Problems optionally restricts the audit to the named packages.
	Problems []string `json:"problems,omitempty"`
}

func (s *Server) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	var req createAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Root == "" {
		jsonError(w, "root is required", http.StatusBadRequest)
		return
	}
	if info, err := os.Stat(req.Root); err != nil || !info.IsDir() {
		jsonError(w, "root is not a readable directory", http.StatusBadRequest)
		return
	}

	run := pipeline.NewRun(req.Root, req.Problems)
	if err := s.orchestrator.Submit(run); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(run.Snapshot())
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	run := s.orchestrator.GetRun(chi.URLParam(r, "runID"))
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run.Snapshot())
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	run := s.orchestrator.GetRun(chi.URLParam(r, "runID"))
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	findings := run.Findings()
	if findings == nil {
		jsonError(w, "run has not completed", http.StatusConflict)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(findings)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := issuelog.FromSnapshot(findings).Render(w); err != nil {
		s.log.Error("render report failed", "run_id", run.ID, "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
