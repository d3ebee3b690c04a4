package invoices

import (
	"errors"
	"net/http"

	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/storage"
)

// Domain errors for invoice operations.
var (
	ErrNotFound           = errors.New("invoice not found")
	ErrDuplicate          = errors.New("invoice already exists")
	ErrEmptyInvoiceNumber = errors.New("invoice number must not be empty")
	ErrEmptyInvoiceID     = errors.New("invoice id must not be empty")
	ErrMissingFile        = errors.New("no file uploaded")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrInvalidRequest     = errors.New("invalid request body")
)

// MapHTTPStatus maps invoice domain errors, region errors, and storage key
// errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, regions.ErrInvalidRegion),
		errors.Is(err, ErrEmptyInvoiceNumber),
		errors.Is(err, ErrEmptyInvoiceID),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, storage.ErrEmptyKey),
		errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
