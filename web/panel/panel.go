// Package panel serves the embedded review dashboard: batch and document
// type selection, side-by-side version comparison, decision capture, and
// audit trail access.
package panel

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/collate/pkg/module"
	"github.com/JaimeStill/collate/pkg/web"
)

//go:embed layouts views static
var assetFS embed.FS

var dashboard = web.ViewDef{
	Route:    "/",
	Template: "dashboard.html",
	Title:    "Collate Review",
	Bundle:   "panel",
}

// NewModule creates the dashboard module at basePath. Rendered pages
// carry apiBase so panel scripts can reach the API from any mount point;
// version labels the footer.
func NewModule(basePath, apiBase, version string) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		assetFS, assetFS,
		"layouts/*.html", "views",
		basePath, version,
		[]web.ViewDef{dashboard},
	)
	if err != nil {
		return nil, err
	}

	render := func(w http.ResponseWriter, r *http.Request) {
		data := web.ViewData{
			Title:    dashboard.Title,
			Bundle:   dashboard.Bundle,
			BasePath: basePath,
			Version:  version,
			Data:     apiBase,
		}
		if err := ts.Render(w, "base", dashboard.Template, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}

	router := web.NewRouter()
	router.HandleFunc("GET /{$}", render)
	router.Handle("GET /static/", web.DistServer(assetFS, "static", "/static"))
	router.SetFallback(render)

	return module.New(basePath, router), nil
}
