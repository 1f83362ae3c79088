package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/collate/internal/api"
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/internal/infrastructure"
	"github.com/JaimeStill/collate/pkg/middleware"
	"github.com/JaimeStill/collate/pkg/module"
	"github.com/JaimeStill/collate/web/panel"
	"github.com/JaimeStill/collate/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
	Panel  *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	panelModule, err := panel.NewModule("/panel", cfg.API.BasePath, cfg.Version)
	if err != nil {
		return nil, err
	}
	panelModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		Panel:  panelModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
	router.Mount(m.Panel)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
