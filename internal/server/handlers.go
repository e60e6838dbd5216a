package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
)

// leadsResponse is the batch success body.
type leadsResponse struct {
	Leads []model.Lead `json:"leads"`
}

// errorResponse is the body for every failure; callers always receive
// syntactically valid JSON.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	runner, ok := s.runner(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown source"})
		return
	}

	found, err := runner.Run(r.Context(), req)
	if err != nil {
		zap.L().Error("lead run failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if found == nil {
		found = []model.Lead{}
	}

	writeJSON(w, http.StatusOK, leadsResponse{Leads: found})
}

// decodeRequest parses and validates the request body. Validation failures
// are terminal at the boundary: no provider is called.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (model.Request, bool) {
	var req model.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return model.Request{}, false
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return model.Request{}, false
	}
	if req.JobDescription == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "jobDescription is required"})
		return model.Request{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}
