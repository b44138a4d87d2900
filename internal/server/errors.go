package server

import (
	"encoding/json"
	"net/http"

	"github.com/joseph-ayodele/event-circulars/internal/common"
)

type errorBody struct {
	Detail string `json:"detail"`
}

// writeError answers with the public part of err only.
func (s *Server) writeError(w http.ResponseWriter, route string, err error) {
	s.writeJSON(w, route, common.HTTPStatus(err), errorBody{Detail: common.PublicMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("server.write_failed", "route", route, "error", err)
	}
	s.metrics.ObserveResponse(route, status)
}
