// Package export splits a loaded document into per-chapter PDFs and packs
// them into an in-memory ZIP archive together with a manifest.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sachithsamaraweera/chaptersplit/internal/chapter"
	"github.com/sachithsamaraweera/chaptersplit/internal/document"
)

// ErrNoChapters means no row in the chapter set could be exported.
var ErrNoChapters = errors.New("no exportable chapters")

// ExportedChapter describes one delivered archive entry.
type ExportedChapter struct {
	Entry string `json:"entry"`
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// SkippedChapter describes one row left out of the archive and why.
type SkippedChapter struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is a finished export run: the archive bytes plus a record of
// what went in and what was dropped.
type Result struct {
	Filename string
	Data     []byte
	Exported []ExportedChapter
	Skipped  []SkippedChapter
}

type manifest struct {
	Source    string            `json:"source"`
	DocID     string            `json:"doc_id"`
	PageCount int               `json:"page_count"`
	Exported  []ExportedChapter `json:"exported"`
	Skipped   []SkippedChapter  `json:"skipped"`
}

// Exporter turns a document plus an edited chapter set into a ZIP of
// single-chapter PDFs.
type Exporter struct {
	log *slog.Logger

	Stats *Stats
}

func NewExporter(log *slog.Logger, stats *Stats) *Exporter {
	return &Exporter{log: log, Stats: stats}
}

// Export extracts every valid chapter row into its own PDF and assembles
// the archive. Rows that fail validation are skipped and reported; an
// extraction failure on a valid row aborts the run, as does a set with
// no exportable rows at all.
func (e *Exporter) Export(doc *document.Document, set chapter.Set) (*Result, error) {
	start := time.Now()

	res := &Result{
		Filename: zipName(doc.Filename),
		Exported: make([]ExportedChapter, 0, len(set)),
		Skipped:  make([]SkippedChapter, 0),
	}

	invalid := make(map[int]string)
	for _, issue := range chapter.Validate(set, doc.PageCount) {
		invalid[issue.Index] = issue.Reason
	}

	conf := model.NewDefaultConfiguration()
	srcCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(doc.Data), conf)
	if err != nil {
		return nil, fmt.Errorf("read source for split: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]bool)

	for i, ch := range set {
		if reason, ok := invalid[i]; ok {
			e.log.Warn("skipping chapter",
				"doc_id", doc.DocID(), "row", i, "name", ch.Name, "reason", reason)
			res.Skipped = append(res.Skipped, SkippedChapter{Name: ch.Name, Reason: reason})
			continue
		}

		data, err := extractRange(srcCtx, ch.Start, ch.End)
		if err != nil {
			return nil, fmt.Errorf("extract pages %d-%d: %w", ch.Start, ch.End, err)
		}

		entry := entryName(used, ch.Name, i)
		w, err := zw.Create(entry)
		if err != nil {
			return nil, fmt.Errorf("assemble zip: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("assemble zip: %w", err)
		}
		res.Exported = append(res.Exported, ExportedChapter{
			Entry: entry,
			Name:  ch.Name,
			Start: ch.Start,
			End:   ch.End,
		})
	}

	if len(res.Exported) == 0 {
		return nil, ErrNoChapters
	}

	if err := writeManifest(zw, doc, res); err != nil {
		return nil, fmt.Errorf("assemble zip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("assemble zip: %w", err)
	}
	res.Data = buf.Bytes()

	if e.Stats != nil {
		e.Stats.Record(time.Since(start).Milliseconds())
	}
	e.log.Info("export complete",
		"doc_id", doc.DocID(),
		"exported", len(res.Exported),
		"skipped", len(res.Skipped),
		"zip_bytes", len(res.Data))
	return res, nil
}

// extractRange renders pages start..end of the source into a standalone PDF.
func extractRange(src *model.Context, start, end int) ([]byte, error) {
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	chCtx, err := pdfcpu.ExtractPages(src, pages, false)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := api.WriteContext(chCtx, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeManifest appends manifest.json so the archive records its own contents.
func writeManifest(zw *zip.Writer, doc *document.Document, res *Result) error {
	m := manifest{
		Source:    doc.Filename,
		DocID:     doc.DocID(),
		PageCount: doc.PageCount,
		Exported:  res.Exported,
		Skipped:   res.Skipped,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	w, err := zw.Create("manifest.json")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func zipName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "document"
	}
	return base + "_chapters.zip"
}
