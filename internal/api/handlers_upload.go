package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sachithsamaraweera/chaptersplit/internal/chapter"
	"github.com/sachithsamaraweera/chaptersplit/internal/document"
	"github.com/sachithsamaraweera/chaptersplit/internal/session"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s (only .pdf)", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	doc, err := s.loader.Load(data, filename)
	if err != nil {
		if errors.Is(err, document.ErrInvalidPDF) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	set, source := s.deriveChapters(doc)

	sess := session.New(session.NewID(), doc, set, source)
	if err := s.store.Put(sess); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("document uploaded",
		"session_id", sess.ID,
		"doc_id", doc.DocID(),
		"filename", filename,
		"pages", doc.PageCount,
		"chapters", len(set),
		"source", source)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sess.Snapshot())
}

// deriveChapters builds the initial chapter table from the document
// outline, falling back to a single whole-document row.
func (s *Server) deriveChapters(doc *document.Document) (chapter.Set, string) {
	if len(doc.Outline) == 0 {
		return chapter.Default(doc.PageCount), session.SourceDefault
	}
	set := chapter.FromOutline(doc.Outline, doc.PageCount)
	if len(set) > s.cfg.MaxChapters {
		s.log.Warn("truncating detected chapters",
			"doc_id", doc.DocID(), "detected", len(set), "cap", s.cfg.MaxChapters)
		set = set[:s.cfg.MaxChapters]
	}
	return set, session.SourceBookmarks
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
