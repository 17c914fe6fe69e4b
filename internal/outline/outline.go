// Package outline flattens a PDF's bookmark tree into an ordered list of
// named page destinations.
package outline

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// Entry is one flattened outline destination. Page is 1-based.
type Entry struct {
	Title string
	Page  int
}

// Source yields a document's outline as a flat, page-ordered entry list.
// An empty result means the document has no usable outline.
type Source interface {
	Flatten() ([]Entry, error)
}

// PDFSource reads the outline of raw PDF bytes via pdfcpu.
type PDFSource struct {
	Data []byte
}

func (s PDFSource) Flatten() ([]Entry, error) {
	bms, err := api.Bookmarks(bytes.NewReader(s.Data), nil)
	if err != nil {
		return nil, err
	}
	return FlattenBookmarks(bms), nil
}

// FlattenBookmarks converts a pdfcpu bookmark tree into flat entries.
//
// Only top-level bookmarks produce entries. A top-level bookmark with kids
// additionally contributes its first kid, suffixed " (Nested)"; deeper
// descendants are ignored. Bookmarks whose destination did not resolve to a
// page are dropped. The result is sorted by page, stably, since bookmarks
// are not guaranteed to appear in document order.
func FlattenBookmarks(bms []pdfcpu.Bookmark) []Entry {
	var entries []Entry
	for _, bm := range bms {
		if bm.PageFrom >= 1 {
			entries = append(entries, Entry{Title: cleanTitle(bm.Title), Page: bm.PageFrom})
		}
		if len(bm.Kids) > 0 {
			kid := bm.Kids[0]
			if kid.PageFrom >= 1 {
				entries = append(entries, Entry{Title: cleanTitle(kid.Title) + " (Nested)", Page: kid.PageFrom})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Page < entries[j].Page })
	return entries
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Untitled"
	}
	return s
}
