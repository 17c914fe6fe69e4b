package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sachithsamaraweera/chaptersplit/internal/chapter"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.store.Delete(id) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	s.log.Info("session released", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePutChapters(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Chapters chapter.Set `json:"chapters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload.Chapters) == 0 {
		jsonError(w, "chapters must not be empty", http.StatusBadRequest)
		return
	}
	if len(payload.Chapters) > s.cfg.MaxChapters {
		jsonError(w, fmt.Sprintf("too many chapters: %d (max %d)", len(payload.Chapters), s.cfg.MaxChapters), http.StatusBadRequest)
		return
	}

	// Rows are stored as submitted; problems flag invalid rows without
	// blocking the edit. Export skips them.
	issues := chapter.Validate(payload.Chapters, sess.Doc.PageCount)
	if issues == nil {
		issues = []chapter.RowIssue{}
	}
	sess.SetChapters(payload.Chapters)

	s.log.Info("chapters updated",
		"session_id", sess.ID, "rows", len(payload.Chapters), "problems", len(issues))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"valid":    len(issues) == 0,
		"problems": issues,
		"chapters": payload.Chapters,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		jsonError(w, "page query parameter must be a number", http.StatusBadRequest)
		return
	}

	text, err := sess.Doc.PageText(page, s.cfg.PreviewCharLimit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"page": page, "text": text})
}
