// Package storage provides blob storage operations behind a provider
// abstraction with Azure Blob Storage and S3-compatible implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/collate/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns the blob at the given key with its content headers.
	// The caller must close the object's Body. Returns ErrNotFound if the
	// blob does not exist.
	Download(ctx context.Context, key string) (*Object, error)
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// Find returns metadata for the blob at the given key.
	// Returns ErrNotFound if the blob does not exist.
	Find(ctx context.Context, key string) (*Metadata, error)
	// List returns one page of object metadata under the given prefix,
	// resuming from marker when non-empty.
	List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error)
	// SignedURL returns a pre-authenticated read URL for the blob at the
	// given key, valid for the ttl duration.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// New creates a storage system for the configured provider. Credentials
// are validated lazily; no connection is established until Start runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderS3:
		return newS3(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
