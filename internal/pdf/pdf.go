// Package pdf wraps the pdfcpu operations this system needs: in-memory page
// merging and page counting. Sources are validated in relaxed mode; protected
// documents are rejected outright rather than stripped, so an author's
// encryption choice is never silently discarded.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/campusunion/documentdesk/internal/docerr"
)

func conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// PageCount returns the number of pages in a PDF document.
func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), conf())
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// Merge concatenates documents: every page of each subsequent document is
// appended, in original order, after all pages of the first. Pages are never
// interleaved, reordered or deduplicated. With a single document the input
// bytes are returned unchanged.
func Merge(docs ...[]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("merge requires at least one document")
	}

	// Reject unreadable or protected sources before touching any of them,
	// so a bad trailing document cannot waste a partial merge.
	for i, d := range docs {
		if _, err := PageCount(d); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf()); err != nil {
		return nil, classify(err)
	}
	return buf.Bytes(), nil
}

// classify maps pdfcpu failures into the operation taxonomy. pdfcpu reports
// protected sources via password errors, mirroring the original check.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return docerr.Wrap(docerr.KindEncryptedDocument, err,
			"document is encrypted; please upload an unencrypted PDF")
	}
	return docerr.Wrap(docerr.KindBadRequest, err, "could not read PDF document")
}
