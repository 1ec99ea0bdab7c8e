package services

import (
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
)

// ViewDocumentHeader is the synthetic leading header representing the stored
// file's link. The updater skips it on the way back in.
const ViewDocumentHeader = "View Document"

// Project renders a located record for display: humanized headers and cell
// values in schema order, with the document link prepended. Hidden fields are
// excluded entirely but stay addressable by the updater. With withTypes set,
// a parallel data-type list is produced, "link" first.
func Project(sc *schema.Schema, rec models.LogicalRecord, withTypes bool) models.ProjectedFields {
	visible := sc.VisibleFields()

	headers := make([]string, 0, len(visible)+1)
	values := make([]string, 0, len(visible)+1)
	headers = append(headers, ViewDocumentHeader)
	values = append(values, rec.Cell(schema.ColumnIndex(sc.DriveLinkColumn)))

	var types []string
	if withTypes {
		types = make([]string, 0, len(visible)+1)
		types = append(types, string(schema.TypeLink))
	}

	for _, f := range visible {
		headers = append(headers, schema.HumanizeKey(f.Key))
		values = append(values, rec.Cell(schema.ColumnIndex(f.Column)))
		if withTypes {
			types = append(types, string(f.DataType))
		}
	}
	return models.ProjectedFields{Headers: headers, Values: values, DataTypes: types}
}
