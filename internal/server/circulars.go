package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

const (
	routeGenerate = "generate"
	routeHealth   = "health"
)

// generateRequest keeps Text as a pointer so a missing key can be told
// apart from an empty string.
type generateRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rid := common.RequestIDFromContext(r.Context())

	in, err := s.decodeGenerate(w, r)
	if err != nil {
		s.logger.Warn("server.generate.bad_request", "req_id", rid, "error", err)
		s.writeError(w, routeGenerate, err)
		return
	}

	res, err := s.gen.Generate(r.Context(), in)
	if err != nil {
		s.logger.Error("server.generate.failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		s.writeError(w, routeGenerate, err)
		return
	}
	defer s.gen.Discard(res)

	f, err := os.Open(res.Path)
	if err != nil {
		s.logger.Error("server.generate.open_failed", "req_id", rid, "path", res.Path, "error", err)
		s.writeError(w, routeGenerate, common.RenderFailure(err))
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		s.writeError(w, routeGenerate, common.RenderFailure(err))
		return
	}

	w.Header().Set("Content-Type", constants.DocxMIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DownloadFilename))
	http.ServeContent(w, r, constants.DownloadFilename, st.ModTime(), f)
	s.metrics.ObserveResponse(routeGenerate, http.StatusOK)

	s.logger.Info("server.generate.ok",
		"req_id", rid,
		"bytes", st.Size(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Server) decodeGenerate(w http.ResponseWriter, r *http.Request) (entity.CircularInput, error) {
	if s.cfg.MaxInputBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return entity.CircularInput{}, common.InvalidInput(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return entity.CircularInput{}, common.InvalidInput("request body must be a JSON object with a \"text\" string")
	}
	if req.Text == nil {
		return entity.CircularInput{}, common.InvalidInput("field \"text\" is required")
	}
	return entity.CircularInput{Text: *req.Text}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, routeHealth, http.StatusOK, map[string]string{"status": "ok"})
}
