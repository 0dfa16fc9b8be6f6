package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/view"
)

// stateFromRequest reads the query and selection carried in the URL
func stateFromRequest(r *http.Request) catalog.State {
	var state catalog.State
	q := r.URL.Query()
	state.SetQuery(q.Get("q"))
	if id := q.Get("selected"); id != "" {
		state.Select(id)
	}
	return state
}

// handleCatalogPage renders the sidebar and detail pane
func (s *Server) handleCatalogPage(w http.ResponseWriter, r *http.Request) {
	page := view.Build(s.store.Snapshot(), stateFromRequest(r), s.memo)
	if err := s.renderer.Render(w, http.StatusOK, "catalog", page); err != nil {
		s.logger.Error("render catalog page", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// recordJSON is a record as served by the JSON API, with its display image resolved
type recordJSON struct {
	models.Record
	Image string `json:"image"`
}

// handleListRecords returns the records matching ?q=
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.memo.Sync(snap.Status.Generation)

	visible := catalog.Filter(snap.Records, r.URL.Query().Get("q"))
	records := make([]recordJSON, 0, len(visible))
	for _, rec := range visible {
		records = append(records, recordJSON{Record: rec, Image: s.memo.Image(rec)})
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"records":     records,
		"total_count": len(snap.Records),
		"status":      snap.Status,
	})
}

// handleGetRecord returns a single record by identifier
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	var state catalog.State
	state.Select(chi.URLParam(r, "id"))

	snap := s.store.Snapshot()
	rec, ok := state.Resolve(snap.Records)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	s.memo.Sync(snap.Status.Generation)
	s.respondJSON(w, http.StatusOK, recordJSON{Record: rec, Image: s.memo.Image(rec)})
}

// handleStatus returns the load status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Status())
}

// handleRefresh reloads the catalog once
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Load(r.Context()); err != nil {
		s.respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  "Failed to reload catalog",
			"status": s.store.Status(),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, s.store.Status())
}
