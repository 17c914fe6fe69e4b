// Package document loads uploaded PDFs and carries the per-document state
// the rest of the service works from.
package document

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sachithsamaraweera/chaptersplit/internal/outline"
)

// ErrInvalidPDF marks uploads that could not be parsed as a usable PDF.
var ErrInvalidPDF = errors.New("invalid or unreadable pdf")

// Document is one successfully loaded upload. Immutable after Load.
type Document struct {
	Data        []byte
	Filename    string
	ContentHash string
	PageCount   int
	Outline     []outline.Entry
}

// DocID is the short form of the content hash used in logs and responses.
func (d *Document) DocID() string {
	return d.ContentHash[:16]
}

// Loader parses uploaded bytes into Documents.
type Loader struct {
	log *slog.Logger
}

func NewLoader(log *slog.Logger) *Loader {
	return &Loader{log: log}
}

// Load validates data as a PDF and reads its page count and outline.
// Corrupt, truncated, and encrypted-without-key input returns ErrInvalidPDF.
// An unreadable outline is not fatal: the document comes back with no
// entries and chapter definition falls back to manual.
func (l *Loader) Load(data []byte, filename string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}

	doc := &Document{
		Data:        data,
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		PageCount:   ctx.PageCount,
	}
	doc.Outline = l.outlineEntries(outline.PDFSource{Data: data})
	return doc, nil
}

func (l *Loader) outlineEntries(src outline.Source) []outline.Entry {
	entries, err := src.Flatten()
	if err != nil {
		l.log.Warn("outline unreadable, chapters fall back to manual definition", "error", err)
		return nil
	}
	return entries
}

// ContentHashHex computes SHA-256 of content and returns it as a hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
