// Package session ties uploaded documents to their editable chapter
// tables between upload and export.
package session

import (
	"sync"
	"time"

	"github.com/sachithsamaraweera/chaptersplit/internal/chapter"
	"github.com/sachithsamaraweera/chaptersplit/internal/document"
)

// Chapter table provenance.
const (
	SourceBookmarks = "bookmarks"
	SourceDefault   = "default"
)

// Session holds one uploaded document and the chapter table the user is
// editing against it.
type Session struct {
	mu sync.Mutex

	ID  string
	Doc *document.Document

	chapters  chapter.Set
	source    string
	createdAt time.Time
	updatedAt time.Time
}

func New(id string, doc *document.Document, chapters chapter.Set, source string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Doc:       doc,
		chapters:  chapters,
		source:    source,
		createdAt: now,
		updatedAt: now,
	}
}

// SetChapters replaces the chapter table atomically.
func (s *Session) SetChapters(set chapter.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chapters = append(chapter.Set(nil), set...)
	s.updatedAt = time.Now()
}

// Chapters returns a copy of the current chapter table.
func (s *Session) Chapters() chapter.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(chapter.Set(nil), s.chapters...)
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

func (s *Session) lastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	SessionID string      `json:"session_id"`
	DocID     string      `json:"doc_id"`
	Filename  string      `json:"filename"`
	PageCount int         `json:"page_count"`
	Source    string      `json:"source"`
	Chapters  chapter.Set `json:"chapters"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	chapters := make(chapter.Set, len(s.chapters))
	copy(chapters, s.chapters)
	return Snapshot{
		SessionID: s.ID,
		DocID:     s.Doc.DocID(),
		Filename:  s.Doc.Filename,
		PageCount: s.Doc.PageCount,
		Source:    s.source,
		Chapters:  chapters,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}
