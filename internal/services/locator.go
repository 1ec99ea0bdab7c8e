// Package services implements the document operations: locate, project,
// update, attach and create. Each operation is a stateless request-response
// unit; the only suspension points are the remote table and blob calls, and
// no retries or background work happen here.
package services

import (
	"context"
	"strings"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// Locator finds logical records by scanning a single schema-mapped column.
type Locator struct {
	table store.Table
}

// NewLocator creates a Locator over a table store.
func NewLocator(table store.Table) *Locator {
	return &Locator{table: table}
}

// FindRecords scans the search field's column top-to-bottom, skipping the
// header row, and returns every record whose cell equals the query
// case-insensitively, in row order. Values are compared as strings; "5" does
// not match a stored "5.0". A zero-match result is an empty slice, not an
// error, and issues no row fetch.
func (l *Locator) FindRecords(ctx context.Context, sc *schema.Schema, searchKey, query string) ([]models.LogicalRecord, error) {
	field, ok := sc.Field(searchKey)
	if !ok {
		return nil, docerr.New(docerr.KindSchema, "unknown search field %q for %s", searchKey, sc.DocType)
	}

	column, err := l.table.GetColumn(ctx, sc.SheetID, field.Column)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(query)
	var rowNums []int
	for i, cell := range column {
		if i == 0 {
			continue // header row
		}
		if strings.ToLower(cell) == want {
			rowNums = append(rowNums, i+1)
		}
	}
	if len(rowNums) == 0 {
		return nil, nil
	}

	rows, err := l.table.GetRows(ctx, sc.SheetID, rowNums)
	if err != nil {
		return nil, err
	}

	idIdx := schema.ColumnIndex(sc.LogIDField().Column)
	records := make([]models.LogicalRecord, len(rows))
	for i, cells := range rows {
		rec := models.LogicalRecord{RowNumber: rowNums[i], Cells: cells}
		rec.LogID = rec.Cell(idIdx)
		records[i] = rec
	}
	return records, nil
}

// FindByLogID locates the unique record carrying an identifier. Zero matches
// is a not-found failure; more than one means the table's identifiers are
// corrupt, and writing against an ambiguous row is refused.
func (l *Locator) FindByLogID(ctx context.Context, sc *schema.Schema, logID string) (models.LogicalRecord, error) {
	records, err := l.FindRecords(ctx, sc, schema.LogIDKey, logID)
	if err != nil {
		return models.LogicalRecord{}, err
	}
	switch len(records) {
	case 0:
		return models.LogicalRecord{}, docerr.New(docerr.KindNotFound, "log ID %s not found", logID)
	case 1:
		return records[0], nil
	default:
		return models.LogicalRecord{}, docerr.New(docerr.KindDuplicateIdentifier,
			"log ID %s matches %d rows; refusing to modify an ambiguous record", logID, len(records))
	}
}
