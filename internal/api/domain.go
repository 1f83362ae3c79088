package api

import (
	"fmt"

	"github.com/JaimeStill/collate/internal/audit"
	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/internal/review"
	"github.com/JaimeStill/collate/internal/viewer"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalog catalog.System
	Review  review.System
	Viewer  viewer.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	catalogSystem := catalog.New(
		runtime.Source,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	exporter := audit.NewExporter(
		runtime.Storage,
		runtime.Logger,
		cfg.Audit,
	)

	reviewSystem := review.New(
		catalogSystem,
		exporter,
		runtime.Logger,
		runtime.Pagination,
	)

	viewerSystem, err := viewer.New(
		&cfg.Viewer,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)
	if err != nil {
		return nil, fmt.Errorf("viewer init failed: %w", err)
	}

	return &Domain{
		Catalog: catalogSystem,
		Review:  reviewSystem,
		Viewer:  viewerSystem,
	}, nil
}
