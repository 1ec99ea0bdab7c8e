package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/store"
)

// MailStatusPending marks a scheduled mail row the external sender has not
// processed yet.
const MailStatusPending = "PENDING"

// Mailer logs outbound emails as rows in a dedicated spreadsheet for an
// external sender to process later. Nothing is sent from here.
type Mailer struct {
	table   store.Table
	sheetID string
	now     func() time.Time
}

// NewMailer creates a Mailer over the mail spreadsheet.
func NewMailer(table store.Table, sheetID string) *Mailer {
	return &Mailer{table: table, sheetID: sheetID, now: time.Now}
}

// Schedule appends one mail row: send date, recipient, subject, body, file
// link, logged-by, logged-time, status.
func (m *Mailer) Schedule(ctx context.Context, req models.MailRequest) error {
	if req.SendDate == "" || req.Recipient == "" || req.Subject == "" {
		return docerr.New(docerr.KindBadRequest, "sendDate, recipient and subject are required")
	}

	colA, err := m.table.GetColumn(ctx, m.sheetID, "A")
	if err != nil {
		return err
	}
	nextRow := len(colA) + 1
	if nextRow < 2 {
		nextRow = 2
	}

	row := []string{
		req.SendDate,
		req.Recipient,
		req.Subject,
		req.Body,
		req.FileLink,
		req.LoggedBy,
		m.now().Format(TimestampLayout),
		MailStatusPending,
	}
	if err := m.table.AppendRow(ctx, m.sheetID, nextRow, row); err != nil {
		return err
	}
	slog.Info("Mail scheduled.", "sendDate", req.SendDate, "recipient", req.Recipient, "row", nextRow)
	return nil
}
