package api

import (
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/internal/infrastructure"
	"github.com/JaimeStill/collate/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Source:    infra.Source,
		},
		Pagination: cfg.API.Pagination,
	}
}
