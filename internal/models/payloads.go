package models

// These structs define the JSON payloads exchanged with the dashboard UI.

// HeaderValue is one (display header, value) pair in an update request.
type HeaderValue struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// UpdateRequest asks for a multi-field partial update of one record.
type UpdateRequest struct {
	DocumentType string        `json:"documentType"`
	Fields       []HeaderValue `json:"fields"`
}

// FindResponse is the search result set for one query.
type FindResponse struct {
	Headers   []string   `json:"headers"`
	DataTypes []string   `json:"dataTypes,omitempty"`
	Results   [][]string `json:"results"`
}

// AttachResponse returns the artifact links after a follow-on attach.
type AttachResponse struct {
	GoogleDrive  string `json:"googleDrive"`
	GoogleSheets string `json:"googleSheets"`
}

// CreateResponse returns the artifact links after logging a new record.
type CreateResponse struct {
	GoogleDrive    string `json:"googleDrive"`
	GoogleSheets   string `json:"googleSheets"`
	GoogleCalendar string `json:"googleCalendar,omitempty"`
	LogID          string `json:"logId"`
}

// MailRequest schedules one outbound email by logging it for the external
// sender; nothing is sent by this application.
type MailRequest struct {
	SendDate  string `json:"sendDate"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	FileLink  string `json:"fileLink,omitempty"`
	LoggedBy  string `json:"loggedBy"`
}

// OverviewEntry is one document type's slice of the records overview.
type OverviewEntry struct {
	DocumentType string     `json:"documentType"`
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
	Error        string     `json:"error,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
