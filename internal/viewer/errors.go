package viewer

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/collate/pkg/storage"
)

// Viewer error sentinels.
var (
	ErrUnknownStrategy = errors.New("unknown viewer strategy")
	ErrOversized       = errors.New("blob exceeds inline size limit")
)

// MapHTTPStatus translates viewer errors to HTTP status codes. Render
// failures carry storage errors, which delegate to the storage mapping.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownStrategy) {
		return http.StatusBadRequest
	}
	return storage.MapHTTPStatus(err)
}
