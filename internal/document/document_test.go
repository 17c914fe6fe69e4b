package document

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sachithsamaraweera/chaptersplit/internal/outline"
	"github.com/sachithsamaraweera/chaptersplit/internal/pdftest"
)

func testLoader() *Loader {
	return NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoad_PageCount(t *testing.T) {
	doc, err := testLoader().Load(pdftest.PDF(10), "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount != 10 {
		t.Errorf("expected 10 pages, got %d", doc.PageCount)
	}
	if doc.Filename != "book.pdf" {
		t.Errorf("expected filename %q, got %q", "book.pdf", doc.Filename)
	}
	if len(doc.ContentHash) != 64 {
		t.Errorf("expected 64-char content hash, got %d chars", len(doc.ContentHash))
	}
	if len(doc.DocID()) != 16 {
		t.Errorf("expected 16-char doc id, got %q", doc.DocID())
	}
	if len(doc.Outline) != 0 {
		t.Errorf("expected no outline entries, got %d", len(doc.Outline))
	}
}

func TestLoad_ReadsOutline(t *testing.T) {
	data := pdftest.PDFWithOutline(6, []pdftest.Outline{
		{Title: "Chapter 1", Page: 1},
		{Title: "Chapter 2", Page: 3},
		{Title: "Chapter 3", Page: 5},
	})
	doc, err := testLoader().Load(data, "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Outline) != 3 {
		t.Fatalf("expected 3 outline entries, got %d", len(doc.Outline))
	}
	want := []outline.Entry{
		{Title: "Chapter 1", Page: 1},
		{Title: "Chapter 2", Page: 3},
		{Title: "Chapter 3", Page: 5},
	}
	for i, w := range want {
		if doc.Outline[i] != w {
			t.Errorf("entry[%d]: expected %+v, got %+v", i, w, doc.Outline[i])
		}
	}
}

func TestLoad_PromotesNestedBookmarks(t *testing.T) {
	data := pdftest.PDFWithOutline(8, []pdftest.Outline{
		{Title: "Part I", Page: 1, Kids: []pdftest.Outline{
			{Title: "Section 1.1", Page: 2},
			{Title: "Section 1.2", Page: 4},
		}},
		{Title: "Part II", Page: 6},
	})
	doc, err := testLoader().Load(data, "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []outline.Entry{
		{Title: "Part I", Page: 1},
		{Title: "Section 1.1 (Nested)", Page: 2},
		{Title: "Part II", Page: 6},
	}
	if len(doc.Outline) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(doc.Outline), doc.Outline)
	}
	for i, w := range want {
		if doc.Outline[i] != w {
			t.Errorf("entry[%d]: expected %+v, got %+v", i, w, doc.Outline[i])
		}
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	_, err := testLoader().Load([]byte("this is not a pdf"), "fake.pdf")
	if err == nil {
		t.Fatal("expected error for non-pdf input")
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF, got %v", err)
	}
}

func TestLoad_RejectsEmpty(t *testing.T) {
	_, err := testLoader().Load(nil, "empty.pdf")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF, got %v", err)
	}
}

func TestLoad_RejectsTruncated(t *testing.T) {
	data := pdftest.PDF(5)
	_, err := testLoader().Load(data[:len(data)/3], "cut.pdf")
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF, got %v", err)
	}
}

type failingSource struct{}

func (failingSource) Flatten() ([]outline.Entry, error) {
	return nil, errors.New("outline exploded")
}

func TestOutlineEntries_DegradesToAbsent(t *testing.T) {
	entries := testLoader().outlineEntries(failingSource{})
	if entries != nil {
		t.Errorf("expected nil entries on source failure, got %v", entries)
	}
}

func TestPageText_ExtractsPageContent(t *testing.T) {
	doc, err := testLoader().Load(pdftest.PDF(3), "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := doc.PageText(2, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Page 2") {
		t.Errorf("expected page text to contain %q, got %q", "Page 2", text)
	}
}

func TestPageText_OutOfRange(t *testing.T) {
	doc, err := testLoader().Load(pdftest.PDF(3), "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, page := range []int{0, -1, 4} {
		if _, err := doc.PageText(page, 500); err == nil {
			t.Errorf("expected error for page %d", page)
		}
	}
}

func TestPageText_TruncatesToCap(t *testing.T) {
	doc, err := testLoader().Load(pdftest.PDF(1), "book.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := doc.PageText(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(text)) > 3 {
		t.Errorf("expected at most 3 runes, got %q", text)
	}
}

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	if ContentHashHex([]byte("aaa")) == ContentHashHex([]byte("bbb")) {
		t.Error("expected different hashes for different inputs")
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than cap", "abc", 10, "abc"},
		{"exactly cap", "abc", 3, "abc"},
		{"cut at cap", "abcdef", 3, "abc"},
		{"no cap", "abcdef", 0, "abcdef"},
		{"multibyte safe", "héllo wörld", 4, "héll"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncateRunes(tc.in, tc.n); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
