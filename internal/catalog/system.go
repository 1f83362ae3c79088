package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/collate/pkg/pagination"
	"github.com/JaimeStill/collate/pkg/storage"
)

// System defines the public contract for catalog domain operations.
type System interface {
	Handler() *Handler

	// Load reads the review table and returns the expanded catalog.
	// A missing source falls back to the sample fixture; unreadable or
	// malformed tables fail with ErrSource.
	Load(ctx context.Context) (*Catalog, error)

	// Verify checks every catalog storage key against the object store.
	Verify(ctx context.Context) (*Report, error)
}

type system struct {
	source     Source
	store      storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a catalog system backed by the given table source and
// object store.
func New(
	source Source,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &system{
		source:     source,
		store:      store,
		logger:     logger.With("system", "catalog"),
		pagination: pagination,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *system) Load(ctx context.Context) (*Catalog, error) {
	rc, err := s.source.Open(ctx)
	if errors.Is(err, ErrSourceMissing) {
		s.logger.Warn(
			"review table missing, falling back to sample fixture",
			"source", s.source.Describe(),
		)
		rc, err = NewSampleSource().Open(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSource, s.source.Describe(), err)
	}
	defer rc.Close()

	rows, err := parseTable(rc)
	if err != nil {
		return nil, err
	}

	cat, err := newCatalog(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info(
		"catalog loaded",
		"source", s.source.Describe(),
		"batches", len(cat.Batches()),
		"records", cat.Len(),
	)

	return cat, nil
}
