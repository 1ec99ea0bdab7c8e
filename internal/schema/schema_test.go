package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusunion/documentdesk/internal/docerr"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		SheetIDs{
			GeneralCOI:             "sheet-coi",
			AdditionallyInsuredCOI: "sheet-coi-ai",
			CharityLetter:          "sheet-cl",
			Contract:               "sheet-con",
			PurchaseOrder:          "sheet-po",
			Sponsorship:            "sheet-spo",
		},
		FolderIDs{
			GeneralCOI:             "folder-coi",
			AdditionallyInsuredCOI: "folder-coi-ai",
			CharityLetter:          "folder-cl",
			Contract:               "folder-con",
			PurchaseOrder:          "folder-po",
			Sponsorship:            "folder-spo",
		},
	)
	require.NoError(t, err)
	return r
}

func TestRegistryContainsAllTypes(t *testing.T) {
	r := testRegistry(t)
	assert.Equal(t, []string{
		"additionallyInsuredCOI", "charityLetter", "contract",
		"generalCOI", "purchaseOrder", "sponsorship",
	}, r.Types())
}

func TestRegistryUnknownType(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Get("invoice")
	require.Error(t, err)
	assert.Equal(t, docerr.KindSchema, docerr.KindOf(err))
}

func TestPurchaseOrderSchemaShape(t *testing.T) {
	r := testRegistry(t)
	sc, err := r.Get("purchaseOrder")
	require.NoError(t, err)

	assert.Equal(t, "sheet-po", sc.SheetID)
	assert.Equal(t, "J", sc.DriveLinkColumn)
	assert.Equal(t, "PO", sc.FilePrefix)

	logID := sc.LogIDField()
	assert.Equal(t, "P", logID.Column)

	// Hidden uploader/timestamp fields stay writable but never project.
	for _, f := range sc.VisibleFields() {
		assert.NotEqual(t, "invoice-uploaded-by", f.Key)
		assert.NotEqual(t, "invoice-upload-time", f.Key)
	}
	_, ok := sc.Field("invoice-uploaded-by")
	assert.True(t, ok)

	// Rightmost column is R, so appended rows span 18 cells.
	assert.Equal(t, 18, sc.Width())
}

func TestSearchOptionsExcludeHiddenFields(t *testing.T) {
	r := testRegistry(t)
	sc, err := r.Get("sponsorship")
	require.NoError(t, err)

	opts := sc.SearchOptions()
	for _, o := range opts {
		assert.NotContains(t, o.Value, "uploaded-by")
		assert.NotContains(t, o.Value, "upload-time")
	}
	assert.Equal(t, "sponsor-name", opts[1].Value)
	assert.Equal(t, "Sponsor Name", opts[1].Label)
}

func TestValidateRejectsBadSchemas(t *testing.T) {
	base := func() *Schema {
		return &Schema{
			DocType: "test",
			Fields: []FieldDef{
				{Key: "log-id", Column: "C", DataType: TypeString},
				{Key: "name", Column: "A", DataType: TypeString},
			},
			DriveLinkColumn: "B",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Schema)
	}{
		{"missing log-id", func(s *Schema) { s.Fields = s.Fields[1:] }},
		{"duplicate log-id", func(s *Schema) {
			s.Fields = append(s.Fields, FieldDef{Key: "log-id", Column: "D"})
		}},
		{"duplicate column", func(s *Schema) {
			s.Fields = append(s.Fields, FieldDef{Key: "other", Column: "A"})
		}},
		{"multi-letter column", func(s *Schema) {
			s.Fields = append(s.Fields, FieldDef{Key: "wide", Column: "AA"})
		}},
		{"lowercase column", func(s *Schema) {
			s.Fields = append(s.Fields, FieldDef{Key: "low", Column: "b"})
		}},
		{"link column collides with field", func(s *Schema) { s.DriveLinkColumn = "A" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}

	assert.NoError(t, base().Validate())
}

func TestHumanizeRoundTrip(t *testing.T) {
	assert.Equal(t, "Business Name", HumanizeKey("business-name"))
	assert.Equal(t, "business-name", KeyForHeader("Business Name"))

	// Every header the projection can produce must resolve back to the key
	// it came from, or updates silently drop fields.
	r := testRegistry(t)
	for _, docType := range r.Types() {
		sc, err := r.Get(docType)
		require.NoError(t, err)
		for _, f := range sc.Fields {
			assert.Equal(t, f.Key, KeyForHeader(HumanizeKey(f.Key)), "doc type %s", docType)
		}
	}
}
