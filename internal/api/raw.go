package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/meur/dexview/internal/source"
	"github.com/meur/dexview/internal/view"
)

// Per-item documents served by the Record Source
const (
	rawFirstID  = 1
	rawLastID   = 151
	rawMaxRange = 200
)

// handleRawPage fetches /{id} for a range of ids and shows each document
// pretty-printed
func (s *Server) handleRawPage(w http.ResponseWriter, r *http.Request) {
	from, err := intParam(r, "from", rawFirstID)
	if err != nil || from < 1 {
		s.respondError(w, http.StatusBadRequest, "from must be a positive integer")
		return
	}
	to, err := intParam(r, "to", rawLastID)
	if err != nil || to < from {
		s.respondError(w, http.StatusBadRequest, "to must be an integer not below from")
		return
	}
	if to-from+1 > rawMaxRange {
		s.respondError(w, http.StatusBadRequest, "range is too large")
		return
	}

	results := s.client.FetchRawBatch(r.Context(), source.Range(from, to), s.batch)
	page := view.BuildRaw(from, to, results)
	if page.Failed > 0 {
		s.logger.Warn("raw fetch had failures", zap.Int("failed", page.Failed), zap.Int("total", len(results)))
	}

	if err := s.renderer.Render(w, http.StatusOK, "raw", page); err != nil {
		s.logger.Error("render raw page", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func intParam(r *http.Request, key string, fallback int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
