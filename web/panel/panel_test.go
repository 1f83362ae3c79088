package panel_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/collate/pkg/module"
	"github.com/JaimeStill/collate/web/panel"
)

func newModule(t *testing.T) *module.Module {
	t.Helper()
	m, err := panel.NewModule("/panel", "/api", "0.1.0")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return m
}

func get(t *testing.T, m *module.Module, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	m.Serve(rec, req)
	return rec
}

func TestNewModulePrefix(t *testing.T) {
	m := newModule(t)
	if m.Prefix() != "/panel" {
		t.Errorf("prefix: got %s, want /panel", m.Prefix())
	}
}

func TestDashboardRender(t *testing.T) {
	m := newModule(t)
	rec := get(t, m, "/panel")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`data-api="/api"`,
		`<title>Collate Review</title>`,
		`id="batch-select"`,
		`id="pair-list"`,
		`id="decision-form"`,
		`id="audit-table"`,
		`/panel/static/panel.css`,
		`/panel/static/panel.js`,
		`collate v0.1.0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	m := newModule(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"stylesheet", "/panel/static/panel.css", ".pane-body"},
		{"script", "/panel/static/panel.js", "audit/export.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, m, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestFallbackRendersDashboard(t *testing.T) {
	m := newModule(t)
	rec := get(t, m, "/panel/sessions/123")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="batch-select"`) {
		t.Error("fallback should render the dashboard")
	}
}
