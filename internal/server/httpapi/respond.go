package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
)

// errorResponse is the single failure shape of the API: every failure,
// including guard rejections, yields {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(ctx, "error encoding response", "error", err.Error())
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	s.writeJSON(ctx, w, status, errorResponse{Error: msg})
}
