package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
)

func overviewRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.NewRegistry(
		schema.SheetIDs{
			GeneralCOI:             "sheet-gcoi",
			AdditionallyInsuredCOI: "sheet-acoi",
			CharityLetter:          "sheet-charity",
			Contract:               "sheet-contract",
			PurchaseOrder:          "sheet-po",
			Sponsorship:            "sheet-spo",
		},
		schema.FolderIDs{
			GeneralCOI:             "folder-gcoi",
			AdditionallyInsuredCOI: "folder-acoi",
			CharityLetter:          "folder-charity",
			Contract:               "folder-contract",
			PurchaseOrder:          "folder-po",
			Sponsorship:            "folder-spo",
		},
	)
	require.NoError(t, err)
	return reg
}

// Seeds purchase orders only; its identifier column P is unique across the
// registry, so the shared fake column map feeds exactly one type.
func seedPurchaseOrders(table *fakeTable) {
	table.columns["P"] = []string{"Log ID", "111", "222", "333"}
	table.rows[3] = []string{"Beta Supplies", "Chess Club", "1002", "43", "2024-02-01", "", "", "", "120", "link-3", "Eastern", "No", "No", "staff", "t2", "222"}
	table.rows[4] = []string{"Acme Catering", "Debate Club", "1003", "44", "2024-03-01", "", "", "", "480", "link-4", "Western", "Yes", "No", "staff", "t3", "333"}
}

func TestRecentReturnsNewestFirstPerType(t *testing.T) {
	table := newFakeTable()
	seedPurchaseOrders(table)
	reg := overviewRegistry(t)

	entries := NewOverview(reg, table, 2).Recent(context.Background())
	require.Len(t, entries, 6)

	byType := map[string]models.OverviewEntry{}
	for _, e := range entries {
		assert.Empty(t, e.Error, "type %s", e.DocumentType)
		byType[e.DocumentType] = e
	}

	po := byType["purchaseOrder"]
	sc, err := reg.Get("purchaseOrder")
	require.NoError(t, err)
	assert.Equal(t, Project(sc, models.LogicalRecord{}, false).Headers, po.Headers)

	// Limit 2 over three data rows: rows 3 and 4, newest first.
	require.Len(t, po.Rows, 2)
	assert.Equal(t, "link-4", po.Rows[0][0])
	assert.Equal(t, "333", po.Rows[0][1])
	assert.Equal(t, "222", po.Rows[1][1])

	// Unseeded types come back with headers and no rows.
	coi := byType["generalCOI"]
	assert.NotEmpty(t, coi.Headers)
	assert.Empty(t, coi.Rows)
}

func TestRecentReportsPerTypeErrors(t *testing.T) {
	table := newFakeTable()
	table.getColumnErr = assert.AnError
	reg := overviewRegistry(t)

	entries := NewOverview(reg, table, 2).Recent(context.Background())
	require.Len(t, entries, 6)
	for _, e := range entries {
		assert.NotEmpty(t, e.Error, "type %s", e.DocumentType)
		assert.NotEmpty(t, e.Headers, "headers survive a fetch failure")
	}
}

func TestExportXLSX(t *testing.T) {
	table := newFakeTable()
	seedPurchaseOrders(table)
	reg := overviewRegistry(t)

	data, err := NewOverview(reg, table, 2).ExportXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, reg.Types(), f.GetSheetList())

	header, err := f.GetCellValue("purchaseOrder", "A1")
	require.NoError(t, err)
	assert.Equal(t, ViewDocumentHeader, header)

	logID, err := f.GetCellValue("purchaseOrder", "B2")
	require.NoError(t, err)
	assert.Equal(t, "333", logID)
}
