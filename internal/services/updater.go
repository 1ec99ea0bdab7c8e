package services

import (
	"context"
	"strings"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// LogIDHeader is the display header the updater uses to pick the record
// identifier out of an edit request.
const LogIDHeader = "Log ID"

// Updater performs multi-field partial updates against one located record.
type Updater struct {
	table   store.Table
	locator *Locator
}

// NewUpdater creates an Updater.
func NewUpdater(table store.Table, locator *Locator) *Updater {
	return &Updater{table: table, locator: locator}
}

// UpdateRecord resolves each display header back to its schema column and
// issues one batched write. The "Log ID" entry names the target record and is
// never written; "View Document" is never written; headers with no matching
// field are silently skipped. If nothing resolvable remains, the request is
// rejected before any remote write.
func (u *Updater) UpdateRecord(ctx context.Context, sc *schema.Schema, fields []models.HeaderValue) error {
	var logID string
	found := false
	for _, f := range fields {
		if strings.EqualFold(f.Header, LogIDHeader) {
			logID = f.Value
			found = true
			break
		}
	}
	if !found {
		return docerr.New(docerr.KindMissingIdentifier, "Log ID not provided")
	}

	rec, err := u.locator.FindByLogID(ctx, sc, logID)
	if err != nil {
		return err
	}

	var writes []store.CellWrite
	for _, f := range fields {
		if strings.EqualFold(f.Header, LogIDHeader) || strings.EqualFold(f.Header, ViewDocumentHeader) {
			continue
		}
		def, ok := sc.Field(schema.KeyForHeader(f.Header))
		if !ok {
			continue
		}
		writes = append(writes, store.CellWrite{Column: def.Column, Row: rec.RowNumber, Value: f.Value})
	}
	if len(writes) == 0 {
		return docerr.New(docerr.KindNoUpdatableFields, "no updatable fields provided")
	}

	return u.table.BatchWrite(ctx, sc.SheetID, writes)
}
