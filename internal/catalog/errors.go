package catalog

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/collate/pkg/storage"
)

// Domain errors for catalog operations.
var (
	ErrSource         = errors.New("review table unreadable or malformed")
	ErrSourceMissing  = errors.New("review table not found")
	ErrNotFound       = errors.New("catalog record not found")
	ErrUnknownDocType = errors.New("unknown document type")
	ErrInvalidQuery   = errors.New("invalid query parameters")
	ErrUnknownSource  = errors.New("unknown catalog source kind")
)

// MapHTTPStatus maps catalog domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnknownDocType) || errors.Is(err, ErrInvalidQuery) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrSource) {
		return http.StatusBadGateway
	}
	if errors.Is(err, storage.ErrAccessDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
