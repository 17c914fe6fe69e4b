package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sachithsamaraweera/chaptersplit/internal/export"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	res, err := s.exporter.Export(sess.Doc, sess.Chapters())
	if err != nil {
		if errors.Is(err, export.ErrNoChapters) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("export failed", "session_id", sess.ID, "error", err)
		jsonError(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("X-Chapters-Exported", strconv.Itoa(len(res.Exported)))
	w.Header().Set("X-Chapters-Skipped", strconv.Itoa(len(res.Skipped)))
	w.Write(res.Data)
}

func (s *Server) handleExportStats(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil || s.exporter.Stats == nil {
		jsonError(w, "export stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"sessions": s.store.Len(),
		"stats":    s.exporter.Stats.Snapshot(),
	})
}
