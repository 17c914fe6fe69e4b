package document

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PageText extracts the plain text of one page, trimmed and truncated to
// maxChars runes (non-positive means no cap). Pages without a text layer
// yield an empty string.
func (d *Document) PageText(pageNr, maxChars int) (text string, err error) {
	if pageNr < 1 || pageNr > d.PageCount {
		return "", fmt.Errorf("page %d out of range (1-%d)", pageNr, d.PageCount)
	}

	// The text extractor panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract text of page %d: %v", pageNr, r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(d.Data), int64(len(d.Data)))
	if err != nil {
		return "", fmt.Errorf("open pdf for text extraction: %w", err)
	}
	page := reader.Page(pageNr)
	if page.V.IsNull() {
		return "", nil
	}
	raw, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract text of page %d: %w", pageNr, err)
	}
	return truncateRunes(strings.TrimSpace(raw), maxChars), nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
