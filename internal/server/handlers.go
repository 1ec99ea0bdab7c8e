package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/services"
)

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, err)
		return
	}
	documentType := r.FormValue("documentType")
	searchCriteria := r.FormValue("searchCriteria")
	searchQuery := r.FormValue("searchQuery")
	returnDataType := r.FormValue("returnDataType") == "true"

	if documentType == "" || searchCriteria == "" || searchQuery == "" {
		writeError(w, docerr.New(docerr.KindBadRequest, "documentType, searchCriteria and searchQuery are required"))
		return
	}
	sc, err := s.registry.Get(documentType)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := s.locator.FindRecords(r.Context(), sc, searchCriteria, searchQuery)
	if err != nil {
		writeError(w, err)
		return
	}

	// Headers and types are schema-derived and identical for every row, so
	// they come from an empty projection even when nothing matched.
	shape := services.Project(sc, models.LogicalRecord{}, returnDataType)
	resp := models.FindResponse{
		Headers: shape.Headers,
		Results: make([][]string, 0, len(records)),
	}
	if returnDataType {
		resp.DataTypes = shape.DataTypes
	}
	for _, rec := range records {
		resp.Results = append(resp.Results, services.Project(sc, rec, false).Values)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, docerr.New(docerr.KindBadRequest, "invalid request body"))
		return
	}
	sc, err := s.registry.Get(req.DocumentType)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.updater.UpdateRecord(r.Context(), sc, req.Fields); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleUpdateStatus flips a purchase order's paid flag; a thin shortcut over
// the generic updater for the status screen.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, err)
		return
	}
	paid := r.FormValue("paid")
	logID := r.FormValue("logId")
	if paid == "" || logID == "" {
		writeError(w, docerr.New(docerr.KindBadRequest, "paid and logId are required"))
		return
	}
	sc, err := s.registry.Get("purchaseOrder")
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.locator.FindByLogID(r.Context(), sc, logID)
	if err != nil {
		writeError(w, err)
		return
	}
	fields := []models.HeaderValue{
		{Header: services.LogIDHeader, Value: logID},
		{Header: "Paid", Value: paid},
	}
	if err := s.updater.UpdateRecord(r.Context(), sc, fields); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"googleSheets": services.SheetRowLink(sc.SheetID, rec.RowNumber),
	})
}

func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, docerr.New(docerr.KindBadRequest, "expected multipart form data"))
		return
	}
	documentType := r.FormValue("documentType")
	logID := r.FormValue("logId")
	submittedBy := r.FormValue("submittedBy")

	file, err := readFormFile(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}
	if file == nil || logID == "" {
		writeError(w, docerr.New(docerr.KindBadRequest, "file and logId are required"))
		return
	}
	sc, err := s.registry.Get(documentType)
	if err != nil {
		writeError(w, err)
		return
	}

	statusFields, err := s.attachStatusFields(r, sc, logID, submittedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.attacher.AttachFollowOn(r.Context(), sc, logID, file, statusFields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// attachStatusFields builds the per-type metadata written after a successful
// merge, and enforces the invoice workflow's "already invoiced" rejection.
func (s *Server) attachStatusFields(r *http.Request, sc *schema.Schema, logID, submittedBy string) ([]services.StatusField, error) {
	timestamp := s.now().Format(services.TimestampLayout)

	switch sc.DocType {
	case "purchaseOrder":
		paid := r.FormValue("paid")
		if paid == "" {
			return nil, docerr.New(docerr.KindBadRequest, "paid is required")
		}
		rec, err := s.locator.FindByLogID(r.Context(), sc, logID)
		if err != nil {
			return nil, err
		}
		invoiced, _ := sc.Field("invoiced")
		if rec.Cell(schema.ColumnIndex(invoiced.Column)) == "Yes" {
			return nil, docerr.New(docerr.KindDuplicateIdentifier,
				"purchase order %s already has an invoice attached", logID)
		}
		return []services.StatusField{
			{Key: "invoiced", Value: "Yes"},
			{Key: "paid", Value: paid},
			{Key: "invoice-uploaded-by", Value: submittedBy},
			{Key: "invoice-upload-time", Value: timestamp},
		}, nil

	case "sponsorship":
		switch kind := r.FormValue("attachmentKind"); kind {
		case "contract":
			return []services.StatusField{
				{Key: "contract-uploaded-by", Value: submittedBy},
				{Key: "contract-upload-time", Value: timestamp},
			}, nil
		case "finance":
			return []services.StatusField{
				{Key: "finance-uploaded-by", Value: submittedBy},
				{Key: "finance-upload-time", Value: timestamp},
			}, nil
		default:
			return nil, docerr.New(docerr.KindBadRequest, "attachmentKind must be contract or finance")
		}

	default:
		return nil, nil
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, docerr.New(docerr.KindBadRequest, "expected multipart form data"))
		return
	}
	sc, err := s.registry.Get(r.FormValue("documentType"))
	if err != nil {
		writeError(w, err)
		return
	}

	fields := map[string]string{}
	for _, f := range sc.Fields {
		if v := r.FormValue(f.Key); v != "" {
			fields[f.Key] = v
		}
	}
	issueDate := fields["issue-date"]
	if issueDate == "" {
		issueDate = fields["contract-date"]
	}

	primary, err := readFormFile(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}

	in := services.CreateInput{
		Fields:      fields,
		PrimaryFile: primary,
		Category:    r.FormValue("documentCategory"),
		IssueDate:   issueDate,
		SubmittedBy: r.FormValue("submittedBy"),
	}
	if r.FormValue("calendarReminder") == "true" {
		in.ReminderDate = r.FormValue("reminderDate")
	}

	timestamp := s.now().Format(services.TimestampLayout)
	extras := []struct {
		formName string
		byKey    string
		timeKey  string
		include  bool
	}{
		{"invoiceFile", "invoice-uploaded-by", "invoice-upload-time", r.FormValue("invoiced") == "Yes"},
		{"contractFile", "contract-uploaded-by", "contract-upload-time", true},
		{"financeFile", "finance-uploaded-by", "finance-upload-time", true},
	}
	for _, e := range extras {
		if !e.include {
			continue
		}
		data, err := readFormFile(r, e.formName)
		if err != nil {
			writeError(w, err)
			return
		}
		if data == nil {
			continue
		}
		in.ExtraFiles = append(in.ExtraFiles, data)
		if _, ok := sc.Field(e.byKey); ok {
			in.ExtraMetadata = append(in.ExtraMetadata,
				services.StatusField{Key: e.byKey, Value: in.SubmittedBy},
				services.StatusField{Key: e.timeKey, Value: timestamp},
			)
		}
	}

	resp, err := s.creator.CreateRecord(r.Context(), sc, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScheduleMail(w http.ResponseWriter, r *http.Request) {
	var req models.MailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, docerr.New(docerr.KindBadRequest, "invalid request body"))
		return
	}
	if err := s.mailer.Schedule(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSearchOptions(w http.ResponseWriter, r *http.Request) {
	sc, err := s.registry.Get(r.URL.Query().Get("documentType"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.SearchOptions())
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.overview.Recent(r.Context()))
}

func (s *Server) handleRecordsExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.overview.ExportXLSX(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="records.xlsx"`)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// parseForm accepts either multipart or url-encoded form posts.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return docerr.New(docerr.KindBadRequest, "could not parse form data")
}

// readFormFile reads an uploaded file in full, or returns nil when the field
// is absent.
func readFormFile(r *http.Request, name string) ([]byte, error) {
	f, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, docerr.New(docerr.KindBadRequest, "could not read uploaded file %q", name)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindBadRequest, err, "could not read uploaded file %q", name)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}
