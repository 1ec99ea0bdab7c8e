// Package pdftest builds minimal PDF fixtures for tests, so no binary files
// need to live in the repository.
package pdftest

import (
	"bytes"
	"fmt"
)

// Document returns a syntactically valid PDF with the given number of pages.
// Object layout: 1 catalog, 2 page tree, then one page object and one content
// stream per page; the xref offsets are computed while writing.
func Document(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	write := func(s string) { buf.WriteString(s) }
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		write(body)
	}

	write("%PDF-1.4\n")

	var kids bytes.Buffer
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids.WriteString(" ")
		}
		fmt.Fprintf(&kids, "%d 0 R", 3+i)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>\nendobj\n",
		kids.String(), pages))
	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /Resources << >> /Contents %d 0 R >>\nendobj\n",
			3+i, 3+pages+i))
	}
	for i := 0; i < pages; i++ {
		content := "q Q"
		addObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			3+pages+i, len(content), content))
	}

	xrefPos := buf.Len()
	size := len(offsets) + 1
	write(fmt.Sprintf("xref\n0 %d\n", size))
	write("0000000000 65535 f \n")
	for _, off := range offsets {
		write(fmt.Sprintf("%010d 00000 n \n", off))
	}
	write(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefPos))
	return buf.Bytes()
}
