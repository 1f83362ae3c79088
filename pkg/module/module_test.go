package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/collate/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestPrefixValidation(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		wantPanic bool
	}{
		{name: "valid", prefix: "/api", wantPanic: false},
		{name: "empty", prefix: "", wantPanic: true},
		{name: "missing slash", prefix: "api", wantPanic: true},
		{name: "multi-level", prefix: "/api/v1", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if tt.wantPanic && r == nil {
					t.Error("expected panic, got none")
				}
				if !tt.wantPanic && r != nil {
					t.Errorf("unexpected panic: %v", r)
				}
			}()
			module.New(tt.prefix, echoPath())
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/reviews/123", nil))

	if got := rec.Body.String(); got != "/reviews/123" {
		t.Errorf("inner path: got %s, want /reviews/123", got)
	}
}

func TestModuleRootPath(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/panel", echoPath()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/panel", nil))

	if got := rec.Body.String(); got != "/" {
		t.Errorf("inner path: got %s, want /", got)
	}
}

func TestNativeFallback(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestDuplicateMountPanics(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate mount")
		}
	}()
	router.Mount(module.New("/api", echoPath()))
}

func TestModuleMiddlewareApplied(t *testing.T) {
	m := module.New("/api", echoPath())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Stamped", "true")
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(m)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/anything", nil))

	if rec.Header().Get("X-Stamped") != "true" {
		t.Error("module middleware did not run")
	}
}
