// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, storage, catalog source) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/pkg/lifecycle"
	"github.com/JaimeStill/collate/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, blob storage, and the review table source.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Source    catalog.Source
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	source, err := catalog.NewSource(&cfg.Catalog, store)
	if err != nil {
		return nil, fmt.Errorf("catalog source init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Source:    source,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
