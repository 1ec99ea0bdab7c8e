// Package store defines the boundaries to the two remote systems: a
// 2-D cell-addressed table store and a key-value blob store. Services depend
// only on these interfaces; the Google-backed implementations live in
// internal/gsuite, and tests substitute in-memory fakes.
package store

import (
	"context"
	"io"
)

// CellWrite is one single-cell write inside a batch.
type CellWrite struct {
	Column string
	Row    int // 1-based, row 1 is the header
	Value  string
}

// Table is the remote spreadsheet boundary. Implementations surface failures
// as docerr.KindRemoteTable; no retries happen at this layer or above.
type Table interface {
	// GetColumn fetches an entire column top-to-bottom, header included.
	// Trailing empty rows are not returned.
	GetColumn(ctx context.Context, sheetID, column string) ([]string, error)

	// GetRows batch-fetches the full contents (columns A-Z) of the given
	// 1-based row numbers in a single remote call, preserving order.
	GetRows(ctx context.Context, sheetID string, rows []int) ([][]string, error)

	// AppendRow appends values as a new row anchored at the given row number.
	AppendRow(ctx context.Context, sheetID string, row int, values []string) error

	// BatchWrite performs all writes in one remote call. Atomicity is
	// whatever the remote batch endpoint provides.
	BatchWrite(ctx context.Context, sheetID string, writes []CellWrite) error
}

// Blob is the remote file-store boundary. Implementations surface failures
// as docerr.KindRemoteBlob.
type Blob interface {
	// FindFolder looks up a folder by exact name under a parent; returns ""
	// when absent.
	FindFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFolder creates a folder under a parent and returns its id.
	CreateFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFile uploads a new file into a folder and returns its id.
	CreateFile(ctx context.Context, parentID, name, mimeType string, body io.Reader) (string, error)

	// Download fetches a file's full binary content.
	Download(ctx context.Context, fileID string) ([]byte, error)

	// Update replaces a file's binary content in place, keeping its id.
	Update(ctx context.Context, fileID, mimeType string, body io.Reader) error
}

// Calendar is the reminder boundary: creates an all-day event and returns a
// link to it.
type Calendar interface {
	InsertAllDayEvent(ctx context.Context, date, summary, description string) (string, error)
}
