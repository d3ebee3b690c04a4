package invoices

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/boratech/exportdesk/pkg/handlers"
	"github.com/boratech/exportdesk/pkg/pagination"
	"github.com/boratech/exportdesk/pkg/routes"
)

// Handler provides HTTP endpoints for invoice and document operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config,
// and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "invoices"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definitions for invoice and document endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/invoices",
			Routes: []routes.Route{
				routes.Get("/{region}", h.List),
				routes.Post("", h.Create),
				routes.Post("/{region}/search", h.Search),
				routes.Get("/{region}/{id}", h.Find),
				routes.Get("/{region}/{id}/notifications", h.Notifications),
				routes.Delete("/{region}/{id}", h.Delete),
			},
		},
		{
			Prefix: "/documents",
			Routes: []routes.Route{
				routes.Post("/upload", h.Upload),
				routes.Get("/view/{key...}", h.View),
			},
		},
	}
}

// List returns all invoices for a region, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.sys.List(r.Context(), r.PathValue("region"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invs)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// a page of matching invoices for a region.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	result, err := h.sys.Search(r.Context(), r.PathValue("region"), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create stores a new invoice with empty document lists.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	inv, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, inv)
}

// Find returns a single invoice by region and id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	inv, err := h.sys.Find(r.Context(), r.PathValue("region"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, inv)
}

// Notifications returns the missing-document notifications for an invoice.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.sys.Notifications(r.Context(), r.PathValue("region"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, notifications)
}

type deleteResponse struct {
	Message      string        `json:"message"`
	BlobsDeleted int           `json:"blobsDeleted"`
	Failures     []BlobFailure `json:"failures,omitempty"`
}

// Delete removes an invoice and its blobs. Partial blob-deletion failures
// are reported as diagnostics on an otherwise successful response.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Delete(r.Context(), r.PathValue("region"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, deleteResponse{
		Message:      "Invoice and associated files deleted successfully",
		BlobsDeleted: result.BlobsDeleted,
		Failures:     result.Failures,
	})
}

// Upload processes a multipart form upload containing a file, its target
// invoice, and a classification. Extracts PDF page counts automatically.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	cmd := UploadCommand{
		InvoiceID:      r.FormValue("invoiceId"),
		Region:         r.FormValue("region"),
		Classification: r.FormValue("type"),
		DocumentName:   r.FormValue("documentName"),
		Data:           data,
		FileName:       header.Filename,
		ContentType:    contentType,
		PageCount:      extractPDFPageCount(h.logger, data, contentType),
	}

	inv, err := h.sys.Upload(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, inv)
}

type viewResponse struct {
	URL string `json:"url"`
}

// View issues a time-limited signed URL for a document blob key.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	url, err := h.sys.ViewURL(r.Context(), r.URL.Query().Get("region"), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, viewResponse{URL: url})
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
