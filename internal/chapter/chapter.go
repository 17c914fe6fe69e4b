// Package chapter models the editable chapter table: named, 1-based
// inclusive page ranges in display and export order.
package chapter

import (
	"fmt"

	"github.com/sachithsamaraweera/chaptersplit/internal/outline"
)

// Chapter is a named page range. Start and End are 1-based and inclusive.
type Chapter struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Set is the ordered chapter list for one document. Order is display and
// export order; ranges may overlap or leave gaps.
type Set []Chapter

// FromOutline derives the initial chapter set from flattened outline
// entries. Each entry starts a chapter; the chapter ends one page before
// the next entry, and the last chapter runs to the end of the document.
// When the next entry starts on or before the current one, the end is
// clamped to the start rather than merged away.
func FromOutline(entries []outline.Entry, pageCount int) Set {
	set := make(Set, 0, len(entries))
	for i, e := range entries {
		end := pageCount
		if i+1 < len(entries) {
			end = entries[i+1].Page - 1
		}
		if end < e.Page {
			end = e.Page
		}
		set = append(set, Chapter{Name: e.Title, Start: e.Page, End: end})
	}
	return set
}

// Default is the single whole-document chapter used when no outline exists.
func Default(pageCount int) Set {
	return Set{{Name: "Chapter 1", Start: 1, End: pageCount}}
}

// RowIssue describes why one chapter row failed validation.
type RowIssue struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Validate bounds-checks every row against the document's page count and
// returns one issue per failing row. Overlaps and gaps between rows are
// allowed. An empty result means every row is exportable.
func Validate(set Set, pageCount int) []RowIssue {
	var issues []RowIssue
	for i, ch := range set {
		if reason := rowReason(ch, pageCount); reason != "" {
			issues = append(issues, RowIssue{Index: i, Name: ch.Name, Reason: reason})
		}
	}
	return issues
}

func rowReason(ch Chapter, pageCount int) string {
	if ch.Start < 1 || ch.Start > pageCount {
		return fmt.Sprintf("start page %d out of range (1-%d)", ch.Start, pageCount)
	}
	if ch.End < 1 || ch.End > pageCount {
		return fmt.Sprintf("end page %d out of range (1-%d)", ch.End, pageCount)
	}
	if ch.Start > ch.End {
		return fmt.Sprintf("start page %d is after end page %d", ch.Start, ch.End)
	}
	return ""
}
