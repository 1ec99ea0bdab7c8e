package gsuite

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// SheetsTable adapts the Sheets API to store.Table. All writes use RAW input
// so cell values land exactly as sent.
type SheetsTable struct {
	svc *sheets.Service
}

// NewSheetsTable wraps a Sheets service.
func NewSheetsTable(svc *sheets.Service) *SheetsTable {
	return &SheetsTable{svc: svc}
}

func (t *SheetsTable) GetColumn(ctx context.Context, sheetID, column string) ([]string, error) {
	resp, err := t.svc.Spreadsheets.Values.Get(sheetID, schema.ColumnRange(column)).Context(ctx).Do()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindRemoteTable, err, "failed to read column %s", column)
	}
	out := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 {
			out[i] = cellString(row[0])
		}
	}
	return out, nil
}

func (t *SheetsTable) GetRows(ctx context.Context, sheetID string, rows []int) ([][]string, error) {
	call := t.svc.Spreadsheets.Values.BatchGet(sheetID)
	for _, r := range rows {
		call = call.Ranges(schema.RowRange(r))
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindRemoteTable, err, "failed to batch-read %d rows", len(rows))
	}
	out := make([][]string, len(resp.ValueRanges))
	for i, vr := range resp.ValueRanges {
		if len(vr.Values) == 0 {
			out[i] = nil
			continue
		}
		cells := make([]string, len(vr.Values[0]))
		for j, v := range vr.Values[0] {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out, nil
}

func (t *SheetsTable) AppendRow(ctx context.Context, sheetID string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	anchor := fmt.Sprintf("%s!A%d:B%d", schema.SheetName, row, row)
	_, err := t.svc.Spreadsheets.Values.Append(sheetID, anchor, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return docerr.Wrap(docerr.KindRemoteTable, err, "failed to append row %d", row)
	}
	return nil
}

func (t *SheetsTable) BatchWrite(ctx context.Context, sheetID string, writes []store.CellWrite) error {
	data := make([]*sheets.ValueRange, len(writes))
	for i, w := range writes {
		data[i] = &sheets.ValueRange{
			Range:  schema.CellRange(w.Column, w.Row),
			Values: [][]interface{}{{w.Value}},
		}
	}
	req := &sheets.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: data}
	_, err := t.svc.Spreadsheets.Values.BatchUpdate(sheetID, req).Context(ctx).Do()
	if err != nil {
		return docerr.Wrap(docerr.KindRemoteTable, err, "failed to batch-write %d cells", len(writes))
	}
	return nil
}

// cellString coerces an API cell value to a string. Sheets returns untyped
// JSON values; everything downstream compares and stores strings.
func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
