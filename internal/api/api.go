// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/internal/infrastructure"
	"github.com/JaimeStill/collate/pkg/middleware"
	"github.com/JaimeStill/collate/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	spec, err := specJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("openapi spec build failed: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
