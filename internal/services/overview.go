package services

import (
	"context"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/store"
)

// Overview assembles the recent-records view across every document type.
type Overview struct {
	registry *schema.Registry
	table    store.Table
	limit    int
}

// NewOverview creates an Overview returning up to limit rows per type.
func NewOverview(registry *schema.Registry, table store.Table, limit int) *Overview {
	return &Overview{registry: registry, table: table, limit: limit}
}

// Recent fetches the newest rows of every document type concurrently. A
// failing type reports its error in place; the others still return.
func (o *Overview) Recent(ctx context.Context) []models.OverviewEntry {
	types := o.registry.Types()
	entries := make([]models.OverviewEntry, len(types))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(3)
	for i, docType := range types {
		eg.Go(func() error {
			entry := models.OverviewEntry{DocumentType: docType}
			sc, err := o.registry.Get(docType)
			if err == nil {
				entry.Headers, entry.Rows, err = o.recentRows(gctx, sc)
			}
			if err != nil {
				slog.Error("Overview fetch failed for type.", "documentType", docType, "error", err)
				entry.Error = docerr.MessageOf(err)
			}
			entries[i] = entry
			return nil
		})
	}
	_ = eg.Wait()
	return entries
}

func (o *Overview) recentRows(ctx context.Context, sc *schema.Schema) ([]string, [][]string, error) {
	headers := Project(sc, models.LogicalRecord{}, false).Headers

	column, err := o.table.GetColumn(ctx, sc.SheetID, sc.LogIDField().Column)
	if err != nil {
		return headers, nil, err
	}
	last := len(column) // cell at slice index i sits on row i+1
	if last < 2 {
		return headers, nil, nil
	}
	first := last - o.limit + 1
	if first < 2 {
		first = 2
	}
	rowNums := make([]int, 0, last-first+1)
	for r := first; r <= last; r++ {
		rowNums = append(rowNums, r)
	}

	rows, err := o.table.GetRows(ctx, sc.SheetID, rowNums)
	if err != nil {
		return headers, nil, err
	}

	out := make([][]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- { // newest first
		rec := models.LogicalRecord{RowNumber: rowNums[i], Cells: rows[i]}
		out = append(out, Project(sc, rec, false).Values)
	}
	return headers, out, nil
}

// ExportXLSX renders the overview as a workbook, one sheet per document type.
func (o *Overview) ExportXLSX(ctx context.Context) ([]byte, error) {
	entries := o.Recent(ctx)

	f := excelize.NewFile()
	defer f.Close()

	for i, entry := range entries {
		sheet := entry.DocumentType
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, docerr.Wrap(docerr.KindInternal, err, "failed to build export sheet %q", sheet)
			}
		}
		if err := f.SetSheetRow(sheet, "A1", &entry.Headers); err != nil {
			return nil, docerr.Wrap(docerr.KindInternal, err, "failed to write export headers")
		}
		for j, row := range entry.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, docerr.Wrap(docerr.KindInternal, err, "failed to address export row")
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, docerr.Wrap(docerr.KindInternal, err, "failed to write export row")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindInternal, err, "failed to serialize export workbook")
	}
	return buf.Bytes(), nil
}
