package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// RecordGateway is the store side of the record API. [repositories.Gateway] implements it.
type RecordGateway interface {
	List(ctx context.Context) ([]models.Record, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Create(ctx context.Context, fields models.RecordFields) (*models.InsertResult, error)
	Replace(ctx context.Context, id string, fields models.RecordFields) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	DeleteMany(ctx context.Context, ids []string) (*models.BulkDeleteResult, error)
}

// RecordImporter ingests an uploaded spreadsheet. [importer.Pipeline] implements it.
type RecordImporter interface {
	Import(ctx context.Context, r io.Reader, filename string) ([]models.Record, error)
}

const (
	uploadField     = "file"
	multipartMemory = 32 << 20
	maxJSONBody     = 1 << 20
)

// RecordHandlerOpts configures a [RecordHandler].
type RecordHandlerOpts struct {
	RequireFields  bool  // Reject create and update bodies missing any field
	MaxUploadBytes int64 // Upload size limit, zero for none
	Logger         *log.Logger
}

// RecordHandler serves the record query and mutation endpoints under /record/.
type RecordHandler struct {
	gateway  RecordGateway
	importer RecordImporter
	opts     RecordHandlerOpts
	logger   *log.Logger
	mux      *http.ServeMux
}

// NewRecordHandler creates a [RecordHandler] over gateway and importer.
func NewRecordHandler(gateway RecordGateway, importer RecordImporter, opts RecordHandlerOpts) *RecordHandler {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	h := &RecordHandler{
		gateway:  gateway,
		importer: importer,
		opts:     opts,
		logger:   shared.WithLogger(opts.Logger, "component", "records"),
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /record/{$}", h.list)
	h.mux.HandleFunc("POST /record/{$}", h.create)
	h.mux.HandleFunc("POST /record/bulk-delete", h.bulkDelete)
	h.mux.HandleFunc("POST /record/upload-excel", h.upload)
	h.mux.HandleFunc("GET /record/{id}", h.get)
	h.mux.HandleFunc("PATCH /record/{id}", h.update)
	h.mux.HandleFunc("DELETE /record/{id}", h.delete)
	return h
}

// Routes returns the record endpoint patterns.
func (h *RecordHandler) Routes() []string {
	return []string{
		"GET /record/{$}",
		"POST /record/{$}",
		"POST /record/bulk-delete",
		"POST /record/upload-excel",
		"GET /record/{id}",
		"PATCH /record/{id}",
		"DELETE /record/{id}",
	}
}

func (h *RecordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *RecordHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.gateway.List(r.Context())
	if err != nil {
		h.fail(w, "retrieving records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) get(w http.ResponseWriter, r *http.Request) {
	record, err := h.gateway.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, "fetching record", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) create(w http.ResponseWriter, r *http.Request) {
	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.fail(w, "creating record", err)
		return
	}

	result, err := h.gateway.Create(r.Context(), fields)
	if err != nil {
		h.fail(w, "creating record", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *RecordHandler) update(w http.ResponseWriter, r *http.Request) {
	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.fail(w, "updating record", err)
		return
	}

	result, err := h.gateway.Replace(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		h.fail(w, "updating record", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *RecordHandler) delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, "deleting record", err)
		return
	}
	recordsDeleted.WithLabelValues("single").Add(float64(result.DeletedCount))
	writeJSON(w, http.StatusOK, result)
}

func (h *RecordHandler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, "deleting records", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, "deleting records", fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	result, err := h.gateway.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		h.fail(w, "deleting records", err)
		return
	}

	recordsDeleted.WithLabelValues("bulk").Add(float64(result.DeletedCount))
	writeJSON(w, http.StatusOK, models.BulkDeleteResponse{Message: "Records deleted successfully", Result: result})
}

func (h *RecordHandler) upload(w http.ResponseWriter, r *http.Request) {
	if h.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	}

	file, header, err := h.uploadedFile(r)
	if err != nil {
		h.fail(w, "uploading records", err)
		return
	}
	defer file.Close()

	records, err := h.importer.Import(r.Context(), file, header)
	if err != nil {
		h.fail(w, "uploading records", err)
		return
	}

	recordsImported.Add(float64(len(records)))
	writeJSON(w, http.StatusOK, models.ImportResponse{
		Message:       "Records uploaded successfully",
		InsertedCount: len(records),
		Records:       records,
	})
}

// uploadedFile returns the multipart file field and its filename.
func (h *RecordHandler) uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("%w: upload exceeds %d bytes", shared.ErrValidation, tooLarge.Limit)
		}
		return nil, "", fmt.Errorf("%w: %v", shared.ErrMissingFile, err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", shared.ErrMissingFile
	}
	return file, header.Filename, nil
}

// decodeFields reads a record body, checking field presence when configured.
func (h *RecordHandler) decodeFields(w http.ResponseWriter, r *http.Request) (models.RecordFields, error) {
	var fields models.RecordFields
	if err := decodeJSON(w, r, &fields); err != nil {
		return fields, err
	}

	if h.opts.RequireFields {
		if err := fields.Validate(); err != nil {
			return fields, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
	}
	return fields, nil
}

// fail logs err and writes the classified error body.
//
// Server errors carry a generic message; client errors describe what was wrong with the request.
func (h *RecordHandler) fail(w http.ResponseWriter, op string, err error) {
	status, code := shared.Classify(err)
	h.logger.Error("Error "+op, "status", status, "error", err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "Error " + op
	}
	writeJSON(w, status, models.ErrorResponse{Error: msg, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", shared.ErrValidation, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
