package regions

import (
	"errors"
	"net/http"
)

// ErrInvalidRegion indicates a region token outside the supported set.
var ErrInvalidRegion = errors.New("invalid region")

// MapHTTPStatus maps region errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRegion) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
