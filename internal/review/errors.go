package review

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/collate/internal/catalog"
)

// Review error sentinels.
var (
	ErrValidation      = errors.New("invalid selection")
	ErrSessionNotFound = errors.New("session not found")
)

// MapHTTPStatus translates review errors to HTTP status codes.
// Catalog and storage errors surface through session creation and
// audit export; those delegate to the catalog mapping.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return catalog.MapHTTPStatus(err)
	}
}
