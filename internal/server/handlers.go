package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"shifttrack/internal/api"
)

func (s *Server) handleShifts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp, err := s.shiftSvc.List(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var input api.ShiftInput
		if !s.decodeBody(w, r, &input) {
			return
		}
		resp, err := s.shiftSvc.Create(r.Context(), input)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, resp)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/api/shifts/")
	if id == "" {
		s.writeError(w, http.StatusNotFound, "shift not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		resp, err := s.shiftSvc.Describe(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	case http.MethodPut, http.MethodPatch:
		var input api.ShiftInput
		if !s.decodeBody(w, r, &input) {
			return
		}
		resp, err := s.shiftSvc.Update(r.Context(), id, input)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		if err := s.shiftSvc.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp, err := s.rateSvc.List(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var input api.RateInput
		if !s.decodeBody(w, r, &input) {
			return
		}
		resp, err := s.rateSvc.Save(r.Context(), input)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, resp)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/api/rates/")
	if id == "" {
		s.writeError(w, http.StatusNotFound, "rate not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		resp, err := s.rateSvc.Describe(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		if err := s.rateSvc.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	preset := r.URL.Query().Get("preset")
	if strings.TrimSpace(preset) == "" {
		preset = "last30days"
	}
	resp, err := s.timelineSvc.Series(r.Context(), preset)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	preset := r.URL.Query().Get("preset")
	if strings.TrimSpace(preset) == "" {
		preset = "last30days"
	}
	shares, err := s.timelineSvc.Breakdown(r.Context(), preset)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]api.PositionShare{"positions": shares})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp, err := s.timelineSvc.Heatmap(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// documentRequest names a paystub document on the local filesystem. The API
// is single-user and loopback-bound, so documents are referenced by path
// rather than uploaded.
type documentRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleAuditExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req documentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		s.writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	resp, err := s.auditSvc.ExtractDocument(r.Context(), req.Path)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var input api.ReconcileInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	resp, err := s.auditSvc.Reconcile(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req documentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		s.writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	resp, err := s.auditSvc.AuditDocument(r.Context(), req.Path)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	health, err := s.store.CheckHealth(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		DBPath:           health.DBPath,
		DatabaseExists:   health.DatabaseExists,
		DatabaseReadable: health.DatabaseReadable,
		TablesExist:      health.TablesExist,
		TotalShifts:      health.TotalShifts,
		IntegrityCheck:   health.IntegrityCheck,
		Error:            health.Error,
	})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathTail extracts the single trailing segment after prefix, rejecting
// nested paths.
func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	if tail == "" || strings.Contains(tail, "/") {
		return ""
	}
	return tail
}
