package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// doneMarker terminates every stream, success or failure; consumers treat
// an error event followed by the marker as "done, failed".
const doneMarker = "[DONE]"

func (s *Server) handleLeadsStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	runner, ok := s.runner(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown source"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Closing the client connection cancels r.Context(), which stops the
	// in-flight fan-out.
	for event := range runner.Stream(r.Context(), req) {
		payload, err := json.Marshal(event)
		if err != nil {
			zap.L().Warn("event encode failed", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	fmt.Fprintf(w, "data: %s\n\n", doneMarker)
	flusher.Flush()
}
