package api

import (
	"net/http"

	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/pkg/openapi"
	"github.com/JaimeStill/collate/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
	spec []byte,
) {
	store := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
		cfg.Storage.SignedURLTTLDuration(),
	)

	routes.Register(
		mux,
		domain.Catalog.Handler().Routes(),
		domain.Review.Handler().Routes(),
		domain.Viewer.Handler().Routes(),
		store.routes(),
	)

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
}
