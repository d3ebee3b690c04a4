package auth

import (
	"errors"
	"net/http"

	"github.com/boratech/exportdesk/internal/regions"
)

// Domain errors for authentication operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidRequest     = errors.New("invalid request body")
)

// MapHTTPStatus maps auth errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, regions.ErrInvalidRegion), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
