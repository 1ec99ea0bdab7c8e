package services

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/pdf"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// StatusField is one (logical key, value) pair written to a record's row
// after a successful attach or as follow-up metadata on creation.
type StatusField struct {
	Key   string
	Value string
}

// Attacher merges newly uploaded pages into a record's stored document.
type Attacher struct {
	table   store.Table
	blob    store.Blob
	locator *Locator
}

// NewAttacher creates an Attacher.
func NewAttacher(table store.Table, blob store.Blob, locator *Locator) *Attacher {
	return &Attacher{table: table, blob: blob, locator: locator}
}

// AttachFollowOn appends every page of newFile after the existing pages of a
// record's stored document, re-uploading in place at the same file identifier.
// Status fields are written only after the re-upload confirms: a failure
// before that leaves the record still marked unattached, which a human can
// retry, instead of falsely marked with no merged document behind it.
func (a *Attacher) AttachFollowOn(ctx context.Context, sc *schema.Schema, logID string, newFile []byte, statusFields []StatusField) (*models.AttachResponse, error) {
	logCtx := slog.With("documentType", sc.DocType, "logId", logID)

	rec, err := a.locator.FindByLogID(ctx, sc, logID)
	if err != nil {
		return nil, err
	}

	link := rec.Cell(schema.ColumnIndex(sc.DriveLinkColumn))
	if link == "" {
		return nil, docerr.New(docerr.KindMissingAttachment, "record %s has no stored document link", logID)
	}
	fileID, err := ParseFileID(link)
	if err != nil {
		return nil, err
	}

	// Resolved up front so a bad status key fails before the blob is touched.
	writes, err := resolveStatusWrites(sc, rec.RowNumber, statusFields)
	if err != nil {
		return nil, err
	}

	existing, err := a.blob.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}

	merged, err := pdf.Merge(existing, newFile)
	if err != nil {
		return nil, err
	}

	if err := a.blob.Update(ctx, fileID, "application/pdf", bytes.NewReader(merged)); err != nil {
		return nil, err
	}
	logCtx.Info("Merged document re-uploaded.", "fileId", fileID, "row", rec.RowNumber)

	if len(writes) > 0 {
		if err := a.table.BatchWrite(ctx, sc.SheetID, writes); err != nil {
			// The merged file is already in place; only the metadata write
			// failed. Surfaced to the caller, who must treat the two stores
			// as non-transactional.
			logCtx.Error("Status write failed after successful upload.", "error", err)
			return nil, err
		}
	}

	return &models.AttachResponse{
		GoogleDrive:  link,
		GoogleSheets: SheetRowLink(sc.SheetID, rec.RowNumber),
	}, nil
}

// resolveStatusWrites maps status fields to cell writes. Status keys come
// from handlers, not users, so an unknown key is a schema error rather than a
// silent skip.
func resolveStatusWrites(sc *schema.Schema, row int, statusFields []StatusField) ([]store.CellWrite, error) {
	writes := make([]store.CellWrite, 0, len(statusFields))
	for _, sf := range statusFields {
		def, ok := sc.Field(sf.Key)
		if !ok {
			return nil, docerr.New(docerr.KindSchema, "unknown status field %q for %s", sf.Key, sc.DocType)
		}
		writes = append(writes, store.CellWrite{Column: def.Column, Row: row, Value: sf.Value})
	}
	return writes, nil
}
