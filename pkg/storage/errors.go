package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// MaxListCap is the upper bound on max_results for list operations.
const MaxListCap int32 = 5000

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates the storage key contains a path traversal segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrAccessDenied indicates the storage provider rejected the credentials
	// for the requested operation.
	ErrAccessDenied = errors.New("storage access denied")
	// ErrUnknownProvider indicates the configured provider is not supported.
	ErrUnknownProvider = errors.New("unknown storage provider")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyKey) || errors.Is(err, ErrInvalidKey) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrAccessDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// ParseMaxResults parses a max_results query value, returning fallback for
// empty input and clamping values above MaxListCap.
func ParseMaxResults(s string, fallback int32) (int32, error) {
	if s == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max_results: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("max_results must be positive: %d", n)
	}

	return min(int32(n), MaxListCap), nil
}
