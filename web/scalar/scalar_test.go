package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/collate/web/scalar"
)

func TestNewModule(t *testing.T) {
	m := scalar.NewModule("/scalar", "/api/openapi.json")

	if m.Prefix() != "/scalar" {
		t.Errorf("prefix: got %s, want /scalar", m.Prefix())
	}
}

func TestIndexRender(t *testing.T) {
	m := scalar.NewModule("/scalar", "/api/openapi.json")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/scalar", nil)
	m.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "/api/openapi.json") {
		t.Errorf("spec url missing: %s", body)
	}
	if !strings.Contains(body, "@scalar/api-reference") {
		t.Errorf("scalar loader missing: %s", body)
	}
}

func TestUnknownPath(t *testing.T) {
	m := scalar.NewModule("/scalar", "/api/openapi.json")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/scalar/missing", nil)
	m.Serve(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
