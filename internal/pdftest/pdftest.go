// Package pdftest builds small, valid PDFs in memory so tests do not need
// binary fixtures. Each generated page carries a one-line text stream
// ("Page N") and pages are US Letter sized.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Outline describes one bookmark for PDFWithOutline. Page is the 1-based
// destination page; a Page of 0 produces a container item with no
// destination of its own. Kids nest arbitrarily deep.
type Outline struct {
	Title string
	Page  int
	Kids  []Outline
}

// PDF returns a valid PDF with the given number of pages and no outline.
func PDF(pages int) []byte {
	return PDFWithOutline(pages, nil)
}

// PDFWithOutline returns a valid PDF with the given number of pages and
// bookmark tree. It panics on a non-positive page count since that is
// always a test bug.
func PDFWithOutline(pages int, items []Outline) []byte {
	if pages < 1 {
		panic("pdftest: pages must be >= 1")
	}

	// Object layout: 1 catalog, 2 page tree, 3 font, then one page object
	// and one content stream per page, then the outline root and its items
	// in pre-order.
	pageObj := func(i int) int { return 3 + i }
	contentObj := func(i int) int { return 3 + pages + i }
	rootNum := 4 + 2*pages

	var nodes []*outlineNode
	var first, last, total int
	if len(items) > 0 {
		next := rootNum + 1
		first, last, total = buildOutlineNodes(items, rootNum, &next, &nodes)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := []int{0} // entry 0 is the xref free-list head
	writeObj := func(num int, body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	catalog := "<< /Type /Catalog /Pages 2 0 R >>"
	if len(nodes) > 0 {
		catalog = fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /Outlines %d 0 R >>", rootNum)
	}
	writeObj(1, catalog)

	kids := make([]string, pages)
	for i := 1; i <= pages; i++ {
		kids[i-1] = fmt.Sprintf("%d 0 R", pageObj(i))
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))

	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i := 1; i <= pages; i++ {
		writeObj(pageObj(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObj(i)))
	}
	for i := 1; i <= pages; i++ {
		stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (Page %d) Tj ET", i)
		writeObj(contentObj(i), fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	if len(nodes) > 0 {
		writeObj(rootNum, fmt.Sprintf("<< /Type /Outlines /First %d 0 R /Last %d 0 R /Count %d >>", first, last, total))
		for _, n := range nodes {
			var sb strings.Builder
			fmt.Fprintf(&sb, "<< /Title (%s) /Parent %d 0 R", escapeString(n.title), n.parent)
			if n.prev != 0 {
				fmt.Fprintf(&sb, " /Prev %d 0 R", n.prev)
			}
			if n.next != 0 {
				fmt.Fprintf(&sb, " /Next %d 0 R", n.next)
			}
			if n.first != 0 {
				fmt.Fprintf(&sb, " /First %d 0 R /Last %d 0 R /Count %d", n.first, n.last, n.count)
			}
			if n.page >= 1 && n.page <= pages {
				fmt.Fprintf(&sb, " /Dest [%d 0 R /Fit]", pageObj(n.page))
			}
			sb.WriteString(" >>")
			writeObj(n.num, sb.String())
		}
	}

	// Cross-reference table entries are fixed-width: exactly 20 bytes each.
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xrefOffset)

	return buf.Bytes()
}

type outlineNode struct {
	num         int
	title       string
	page        int
	parent      int
	prev, next  int
	first, last int
	count       int
}

// buildOutlineNodes assigns object numbers in pre-order and threads the
// sibling/parent references. It returns the first and last sibling object
// numbers at this level and the total number of descendants.
func buildOutlineNodes(items []Outline, parentNum int, next *int, nodes *[]*outlineNode) (int, int, int) {
	total := 0
	var siblings []*outlineNode
	for _, it := range items {
		n := &outlineNode{num: *next, title: it.Title, page: it.Page, parent: parentNum}
		*next++
		*nodes = append(*nodes, n)
		f, l, t := buildOutlineNodes(it.Kids, n.num, next, nodes)
		n.first, n.last, n.count = f, l, t
		total += 1 + t
		siblings = append(siblings, n)
	}
	for i, n := range siblings {
		if i > 0 {
			n.prev = siblings[i-1].num
		}
		if i+1 < len(siblings) {
			n.next = siblings[i+1].num
		}
	}
	if len(siblings) == 0 {
		return 0, 0, 0
	}
	return siblings[0].num, siblings[len(siblings)-1].num, total
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
