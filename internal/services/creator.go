package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/pdf"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// TimestampLayout formats logged-time and upload-time cells.
const TimestampLayout = "January 02, 2006 15:04:05"

const issueDateLayout = "2006-01-02"

// CreateInput carries everything needed to log a new record.
type CreateInput struct {
	// Fields maps logical keys to values. log-id, the link column, logged-by
	// and logged-time are filled by the creator; keys with no schema field
	// are skipped, matching the updater's policy.
	Fields map[string]string

	PrimaryFile []byte
	// ExtraFiles are merged after the primary, in the order given (e.g. a
	// contract then a finance document).
	ExtraFiles [][]byte
	// ExtraMetadata is written in a follow-up batch targeting the appended
	// row when extra files were attached (uploader and timestamp columns).
	ExtraMetadata []StatusField

	Category    string
	IssueDate   string // YYYY-MM-DD; its year names the destination folder
	SubmittedBy string

	// ReminderDate, when set, schedules an all-day calendar reminder.
	ReminderDate string
}

// Creator logs first-time records: merge, upload, append, follow-up metadata.
type Creator struct {
	table    store.Table
	blob     store.Blob
	calendar store.Calendar // nil disables reminders

	now      func() time.Time
	newLogID func() string
}

// NewCreator creates a Creator. Log IDs are milliseconds-since-epoch strings;
// unique enough at human-driven submission rates.
func NewCreator(table store.Table, blob store.Blob, calendar store.Calendar) *Creator {
	return &Creator{
		table:    table,
		blob:     blob,
		calendar: calendar,
		now:      time.Now,
		newLogID: func() string {
			return strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
	}
}

// CreateRecord merges the supplied binaries into one document, uploads it
// into the type's category/year folder (creating folders on demand), appends
// a row in schema order, and returns links to the created artifacts.
func (c *Creator) CreateRecord(ctx context.Context, sc *schema.Schema, in CreateInput) (*models.CreateResponse, error) {
	logID := c.newLogID()
	logCtx := slog.With("documentType", sc.DocType, "logId", logID)

	if len(in.PrimaryFile) == 0 {
		return nil, docerr.New(docerr.KindBadRequest, "a document file is required")
	}
	issued, err := time.Parse(issueDateLayout, in.IssueDate)
	if err != nil {
		return nil, docerr.New(docerr.KindBadRequest, "invalid issue date %q", in.IssueDate)
	}

	docs := append([][]byte{in.PrimaryFile}, in.ExtraFiles...)
	merged, err := pdf.Merge(docs...)
	if err != nil {
		return nil, err
	}

	categoryID, err := c.findOrCreateFolder(ctx, sc.DriveFolderID, in.Category)
	if err != nil {
		return nil, err
	}
	yearID, err := c.findOrCreateFolder(ctx, categoryID, issued.Format("2006"))
	if err != nil {
		return nil, err
	}

	party := in.Fields[sc.PartyKey]
	fileName := fmt.Sprintf("%s_%s_%s_%s", sc.FilePrefix, party, in.IssueDate, logID)
	fileID, err := c.blob.CreateFile(ctx, yearID, fileName, "application/pdf", bytes.NewReader(merged))
	if err != nil {
		return nil, err
	}
	fileLink := FileLink(fileID)
	logCtx.Info("Document uploaded.", "fileId", fileID, "fileName", fileName)

	// Next free row: read-then-append, not atomic. Concurrent creators can
	// compute the same target; acceptable at human submission rates.
	colA, err := c.table.GetColumn(ctx, sc.SheetID, "A")
	if err != nil {
		return nil, err
	}
	nextRow := len(colA) + 1
	if nextRow < 2 {
		nextRow = 2
	}

	row := make([]string, sc.Width())
	for key, value := range in.Fields {
		if def, ok := sc.Field(key); ok {
			row[schema.ColumnIndex(def.Column)] = value
		}
	}
	row[schema.ColumnIndex(sc.LogIDField().Column)] = logID
	row[schema.ColumnIndex(sc.DriveLinkColumn)] = fileLink
	if def, ok := sc.Field("logged-by"); ok {
		row[schema.ColumnIndex(def.Column)] = in.SubmittedBy
	}
	if def, ok := sc.Field("logged-time"); ok {
		row[schema.ColumnIndex(def.Column)] = c.now().Format(TimestampLayout)
	}

	if err := c.table.AppendRow(ctx, sc.SheetID, nextRow, row); err != nil {
		return nil, err
	}
	sheetLink := SheetRowLink(sc.SheetID, nextRow)
	logCtx.Info("Record logged.", "row", nextRow)

	if len(in.ExtraFiles) > 0 && len(in.ExtraMetadata) > 0 {
		writes, err := resolveStatusWrites(sc, nextRow, in.ExtraMetadata)
		if err != nil {
			return nil, err
		}
		if err := c.table.BatchWrite(ctx, sc.SheetID, writes); err != nil {
			// Row and file exist; only the follow-up metadata is missing.
			logCtx.Error("Metadata write failed after append.", "error", err)
			return nil, err
		}
	}

	resp := &models.CreateResponse{
		GoogleDrive:  fileLink,
		GoogleSheets: sheetLink,
		LogID:        logID,
	}

	if in.ReminderDate != "" && c.calendar != nil {
		summary := "Event Date: " + party
		description := fmt.Sprintf("Notes: %s\n\nFile: %s\n\nView Full Details: %s\n\nLog ID: %s",
			in.Fields["notes"], fileLink, sheetLink, logID)
		eventLink, err := c.calendar.InsertAllDayEvent(ctx, in.ReminderDate, summary, description)
		if err != nil {
			return nil, err
		}
		resp.GoogleCalendar = eventLink
		logCtx.Info("Reminder created.", "reminderDate", in.ReminderDate)
	}

	return resp, nil
}

// findOrCreateFolder looks a folder up by exact name and creates it only when
// absent. Lookup-then-create can race with a concurrent creator; a duplicate
// folder is rare and harmless.
func (c *Creator) findOrCreateFolder(ctx context.Context, parentID, name string) (string, error) {
	id, err := c.blob.FindFolder(ctx, parentID, name)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	return c.blob.CreateFolder(ctx, parentID, name)
}
