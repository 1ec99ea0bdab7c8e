// Package schema declares the document-type registry: which spreadsheet holds
// each document type, which column holds which logical field, and the
// single-letter addressing scheme the rest of the system assumes.
package schema

import (
	"fmt"
	"sort"

	"github.com/campusunion/documentdesk/internal/docerr"
)

// DataType is the semantic type of a field, used by the UI to pick widgets.
type DataType string

const (
	TypeString   DataType = "string"
	TypeNumber   DataType = "number"
	TypeDate     DataType = "date"
	TypeCurrency DataType = "currency"

	// TypeLink is synthesized for the "View Document" projection entry;
	// no FieldDef ever declares it.
	TypeLink DataType = "link"
)

// LogIDKey names the field holding the generated record identifier. Every
// schema must declare exactly one field with this key.
const LogIDKey = "log-id"

// FieldDef binds a logical field to a spreadsheet column.
type FieldDef struct {
	Key      string
	Column   string
	DataType DataType
	Hidden   bool // hidden fields are writable but never projected
}

// Schema describes one document type's spreadsheet layout and Drive home.
type Schema struct {
	DocType         string
	SheetID         string
	Fields          []FieldDef // order defines projection order
	DriveLinkColumn string     // column holding the stored file's link
	DriveFolderID   string     // root folder for uploads of this type
	FilePrefix      string     // file name prefix, e.g. "PO"
	PartyKey        string     // field whose value names the file's party
}

// Field returns the definition for a logical key.
func (s *Schema) Field(key string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDef{}, false
}

// LogIDField returns the identifier field. Validate guarantees it exists.
func (s *Schema) LogIDField() FieldDef {
	f, _ := s.Field(LogIDKey)
	return f
}

// VisibleFields returns the fields that participate in projection and search,
// in declaration order.
func (s *Schema) VisibleFields() []FieldDef {
	out := make([]FieldDef, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Hidden {
			out = append(out, f)
		}
	}
	return out
}

// Width is the number of cells an appended row must span: one past the
// rightmost declared column (link column included).
func (s *Schema) Width() int {
	max := ColumnIndex(s.DriveLinkColumn)
	for _, f := range s.Fields {
		if i := ColumnIndex(f.Column); i > max {
			max = i
		}
	}
	return max + 1
}

// Validate checks the invariants downstream code assumes: exactly one log-id
// field, unique single-letter columns, and a declared link column.
func (s *Schema) Validate() error {
	seen := map[string]string{}
	logIDs := 0
	for _, f := range s.Fields {
		if f.Key == LogIDKey {
			logIDs++
		}
		if err := validColumn(f.Column); err != nil {
			return fmt.Errorf("%s field %q: %w", s.DocType, f.Key, err)
		}
		if prev, ok := seen[f.Column]; ok {
			return fmt.Errorf("%s: column %s claimed by both %q and %q", s.DocType, f.Column, prev, f.Key)
		}
		seen[f.Column] = f.Key
	}
	if logIDs != 1 {
		return fmt.Errorf("%s: schema must declare exactly one %q field, has %d", s.DocType, LogIDKey, logIDs)
	}
	if err := validColumn(s.DriveLinkColumn); err != nil {
		return fmt.Errorf("%s link column: %w", s.DocType, err)
	}
	if prev, ok := seen[s.DriveLinkColumn]; ok {
		return fmt.Errorf("%s: link column %s claimed by field %q", s.DocType, s.DriveLinkColumn, prev)
	}
	return nil
}

func validColumn(col string) error {
	if len(col) != 1 || col[0] < 'A' || col[0] > 'Z' {
		return fmt.Errorf("column %q is not a single letter A-Z", col)
	}
	return nil
}

// Registry holds every document type's schema. Built once at startup,
// immutable afterwards.
type Registry struct {
	schemas map[string]*Schema
}

// SheetIDs carries the per-type remote identifiers from configuration.
type SheetIDs struct {
	GeneralCOI             string
	AdditionallyInsuredCOI string
	CharityLetter          string
	Contract               string
	PurchaseOrder          string
	Sponsorship            string
}

// FolderIDs carries the per-type Drive root folders from configuration.
type FolderIDs struct {
	GeneralCOI             string
	AdditionallyInsuredCOI string
	CharityLetter          string
	Contract               string
	PurchaseOrder          string
	Sponsorship            string
}

// NewRegistry builds the registry for the six document types and validates
// every schema.
func NewRegistry(sheets SheetIDs, folders FolderIDs) (*Registry, error) {
	schemas := map[string]*Schema{
		"generalCOI": {
			DocType:    "generalCOI",
			SheetID:    sheets.GeneralCOI,
			FilePrefix: "COI",
			PartyKey:   "business-name",
			Fields: []FieldDef{
				{Key: "log-id", Column: "K", DataType: TypeString},
				{Key: "business-name", Column: "A", DataType: TypeString},
				{Key: "business-name-2", Column: "B", DataType: TypeString},
				{Key: "amount", Column: "C", DataType: TypeCurrency},
				{Key: "issue-date", Column: "D", DataType: TypeDate},
				{Key: "expiry-date", Column: "E", DataType: TypeDate},
				{Key: "category", Column: "H", DataType: TypeString},
				{Key: "notes", Column: "F", DataType: TypeString},
				{Key: "logged-by", Column: "I", DataType: TypeString},
				{Key: "logged-time", Column: "J", DataType: TypeDate},
			},
			DriveLinkColumn: "G",
			DriveFolderID:   folders.GeneralCOI,
		},
		"additionallyInsuredCOI": {
			DocType:    "additionallyInsuredCOI",
			SheetID:    sheets.AdditionallyInsuredCOI,
			FilePrefix: "COI_AI",
			PartyKey:   "business-name",
			Fields: []FieldDef{
				{Key: "log-id", Column: "K", DataType: TypeString},
				{Key: "business-name", Column: "A", DataType: TypeString},
				{Key: "business-name-2", Column: "B", DataType: TypeString},
				{Key: "club-name", Column: "C", DataType: TypeString},
				{Key: "amount", Column: "D", DataType: TypeCurrency},
				{Key: "issue-date", Column: "E", DataType: TypeDate},
				{Key: "expiry-date", Column: "F", DataType: TypeDate},
				{Key: "notes", Column: "G", DataType: TypeString},
				{Key: "logged-by", Column: "I", DataType: TypeString},
				{Key: "logged-time", Column: "J", DataType: TypeDate},
			},
			DriveLinkColumn: "H",
			DriveFolderID:   folders.AdditionallyInsuredCOI,
		},
		"charityLetter": {
			DocType:    "charityLetter",
			SheetID:    sheets.CharityLetter,
			FilePrefix: "CL",
			PartyKey:   "charity-name",
			Fields: []FieldDef{
				{Key: "log-id", Column: "K", DataType: TypeString},
				{Key: "charity-name", Column: "A", DataType: TypeString},
				{Key: "charity-number", Column: "B", DataType: TypeNumber},
				{Key: "club-name", Column: "C", DataType: TypeString},
				{Key: "event-name", Column: "D", DataType: TypeString},
				{Key: "amount", Column: "E", DataType: TypeCurrency},
				{Key: "issue-date", Column: "F", DataType: TypeDate},
				{Key: "notes", Column: "G", DataType: TypeString},
				{Key: "logged-by", Column: "I", DataType: TypeString},
				{Key: "logged-time", Column: "J", DataType: TypeDate},
			},
			DriveLinkColumn: "H",
			DriveFolderID:   folders.CharityLetter,
		},
		"contract": {
			DocType:    "contract",
			SheetID:    sheets.Contract,
			FilePrefix: "CON",
			PartyKey:   "contract-party",
			Fields: []FieldDef{
				{Key: "log-id", Column: "J", DataType: TypeString},
				{Key: "contract-party", Column: "A", DataType: TypeString},
				{Key: "club-name", Column: "B", DataType: TypeString},
				{Key: "contract-date", Column: "C", DataType: TypeDate},
				{Key: "event-action-date", Column: "D", DataType: TypeDate},
				{Key: "amount", Column: "E", DataType: TypeCurrency},
				{Key: "notes", Column: "F", DataType: TypeString},
				{Key: "logged-by", Column: "H", DataType: TypeString},
				{Key: "logged-time", Column: "I", DataType: TypeDate},
			},
			DriveLinkColumn: "G",
			DriveFolderID:   folders.Contract,
		},
		"purchaseOrder": {
			DocType:    "purchaseOrder",
			SheetID:    sheets.PurchaseOrder,
			FilePrefix: "PO",
			PartyKey:   "business-name",
			Fields: []FieldDef{
				{Key: "log-id", Column: "P", DataType: TypeString},
				{Key: "business-name", Column: "A", DataType: TypeString},
				{Key: "club-name", Column: "B", DataType: TypeString},
				{Key: "club-account-number", Column: "C", DataType: TypeNumber},
				{Key: "po-number", Column: "D", DataType: TypeNumber},
				{Key: "issue-date", Column: "E", DataType: TypeDate},
				{Key: "event-date", Column: "F", DataType: TypeDate},
				{Key: "event-name", Column: "G", DataType: TypeString},
				{Key: "amount", Column: "H", DataType: TypeCurrency},
				{Key: "notes", Column: "I", DataType: TypeString},
				{Key: "category", Column: "K", DataType: TypeString},
				{Key: "invoiced", Column: "L", DataType: TypeString},
				{Key: "paid", Column: "M", DataType: TypeString},
				{Key: "logged-by", Column: "N", DataType: TypeString},
				{Key: "logged-time", Column: "O", DataType: TypeDate},
				{Key: "invoice-uploaded-by", Column: "Q", DataType: TypeString, Hidden: true},
				{Key: "invoice-upload-time", Column: "R", DataType: TypeString, Hidden: true},
			},
			DriveLinkColumn: "J",
			DriveFolderID:   folders.PurchaseOrder,
		},
		"sponsorship": {
			DocType:    "sponsorship",
			SheetID:    sheets.Sponsorship,
			FilePrefix: "SPO",
			PartyKey:   "sponsor-name",
			Fields: []FieldDef{
				{Key: "log-id", Column: "K", DataType: TypeString},
				{Key: "sponsor-name", Column: "A", DataType: TypeString},
				{Key: "club-name", Column: "B", DataType: TypeString},
				{Key: "issue-date", Column: "C", DataType: TypeDate},
				{Key: "amount", Column: "D", DataType: TypeCurrency},
				{Key: "method-of-payment", Column: "E", DataType: TypeString},
				{Key: "notes", Column: "F", DataType: TypeString},
				{Key: "category", Column: "H", DataType: TypeString},
				{Key: "logged-by", Column: "I", DataType: TypeString},
				{Key: "logged-time", Column: "J", DataType: TypeDate},
				{Key: "contract-uploaded-by", Column: "L", DataType: TypeString, Hidden: true},
				{Key: "contract-upload-time", Column: "M", DataType: TypeString, Hidden: true},
				{Key: "finance-uploaded-by", Column: "N", DataType: TypeString, Hidden: true},
				{Key: "finance-upload-time", Column: "O", DataType: TypeString, Hidden: true},
			},
			DriveLinkColumn: "G",
			DriveFolderID:   folders.Sponsorship,
		},
	}

	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}
	}
	return &Registry{schemas: schemas}, nil
}

// Get returns the schema for a document type.
func (r *Registry) Get(docType string) (*Schema, error) {
	s, ok := r.schemas[docType]
	if !ok {
		return nil, docerr.New(docerr.KindSchema, "unknown document type %q", docType)
	}
	return s, nil
}

// Types lists the registered document types in stable order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SearchOption describes one searchable field for the UI's criteria picker.
type SearchOption struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	DataType DataType `json:"dataType"`
}

// SearchOptions lists the searchable fields of a schema: every visible field,
// labeled with its humanized key.
func (s *Schema) SearchOptions() []SearchOption {
	fields := s.VisibleFields()
	out := make([]SearchOption, 0, len(fields))
	for _, f := range fields {
		out = append(out, SearchOption{
			Value:    f.Key,
			Label:    HumanizeKey(f.Key),
			DataType: f.DataType,
		})
	}
	return out
}
