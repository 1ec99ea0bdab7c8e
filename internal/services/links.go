package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/campusunion/documentdesk/internal/docerr"
)

var filePathPattern = regexp.MustCompile(`/d/([^/]+)`)

// FileLink builds the shareable link stored in a record's link cell.
func FileLink(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID)
}

// SheetRowLink deep-links into a spreadsheet at a record's row.
func SheetRowLink(sheetID string, row int) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=0&range=A%d", sheetID, row)
}

// ParseFileID extracts the blob-store file identifier from a stored link.
// Two link shapes exist in the tables: a "/d/<id>/" path segment and an
// "id=<id>" query parameter.
func ParseFileID(link string) (string, error) {
	if strings.Contains(link, "/d/") {
		if m := filePathPattern.FindStringSubmatch(link); m != nil {
			return m[1], nil
		}
		return "", docerr.New(docerr.KindUnparsableLink, "cannot parse file ID from stored link")
	}
	if u, err := url.Parse(link); err == nil {
		if id := u.Query().Get("id"); id != "" {
			return id, nil
		}
	}
	return "", docerr.New(docerr.KindUnparsableLink, "cannot parse file ID from stored link")
}
