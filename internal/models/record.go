package models

// LogicalRecord is the transient view the locator materializes from one
// spreadsheet row. It is created per lookup and never cached.
type LogicalRecord struct {
	RowNumber int      // 1-based; row 1 is the header
	Cells     []string // raw row contents, columns A onward
	LogID     string
}

// Cell returns the value at a zero-based column index, or "" when the row is
// shorter than the schema (trailing blanks are not stored remotely).
func (r LogicalRecord) Cell(index int) string {
	if index < 0 || index >= len(r.Cells) {
		return ""
	}
	return r.Cells[index]
}

// ProjectedFields is a located record rendered for display: parallel header,
// value and data-type lists with a synthetic leading "View Document" entry.
type ProjectedFields struct {
	Headers   []string `json:"headers"`
	Values    []string `json:"values"`
	DataTypes []string `json:"dataTypes,omitempty"`
}
