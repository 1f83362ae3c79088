package viewer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/collate/internal/viewer"
	"github.com/JaimeStill/collate/pkg/storage"
)

type mockSystem struct {
	renderFn     func(ctx context.Context, key string) (*viewer.View, error)
	strategiesFn func() []viewer.StrategyStats
}

func (m *mockSystem) Handler() *viewer.Handler {
	return viewer.NewHandler(m, discardLogger(), testPagination())
}

func (m *mockSystem) Render(ctx context.Context, key string) (*viewer.View, error) {
	return m.renderFn(ctx, key)
}

func (m *mockSystem) Strategies() []viewer.StrategyStats {
	return m.strategiesFn()
}

func setupMux(h *viewer.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerRender(t *testing.T) {
	t.Run("returns view", func(t *testing.T) {
		mock := &mockSystem{
			renderFn: func(_ context.Context, key string) (*viewer.View, error) {
				return &viewer.View{Key: key, Strategy: "signed", HTML: "<iframe></iframe>"}, nil
			},
		}
		mux := setupMux(mock.Handler())

		req := httptest.NewRequest(http.MethodGet, "/viewer/render?key=CI/B001/B001_1.pdf", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
		}

		var view viewer.View
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if view.Strategy != "signed" {
			t.Errorf("strategy: got %s, want signed", view.Strategy)
		}
	})

	t.Run("requires key", func(t *testing.T) {
		mock := &mockSystem{}
		mux := setupMux(mock.Handler())

		req := httptest.NewRequest(http.MethodGet, "/viewer/render", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("maps access denied", func(t *testing.T) {
		mock := &mockSystem{
			renderFn: func(_ context.Context, _ string) (*viewer.View, error) {
				return nil, storage.ErrAccessDenied
			},
		}
		mux := setupMux(mock.Handler())

		req := httptest.NewRequest(http.MethodGet, "/viewer/render?key=CI/B001/B001_1.pdf", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("placeholder view stays 200", func(t *testing.T) {
		mock := &mockSystem{
			renderFn: func(_ context.Context, key string) (*viewer.View, error) {
				return &viewer.View{Key: key, Strategy: "placeholder", Error: "document unavailable"}, nil
			},
		}
		mux := setupMux(mock.Handler())

		req := httptest.NewRequest(http.MethodGet, "/viewer/render?key=CI/B001/B001_9.pdf", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestHandlerStrategies(t *testing.T) {
	mock := &mockSystem{
		strategiesFn: func() []viewer.StrategyStats {
			return []viewer.StrategyStats{
				{Name: "inline", Attempts: 4, Successes: 2},
				{Name: "signed", Attempts: 2, Successes: 2},
			}
		},
	}
	mux := setupMux(mock.Handler())

	req := httptest.NewRequest(http.MethodGet, "/viewer/strategies", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}

	var stats []viewer.StrategyStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(stats) != 2 || stats[0].Name != "inline" {
		t.Errorf("stats: got %+v", stats)
	}
}

func TestHandlerRoutes(t *testing.T) {
	mock := &mockSystem{}
	group := mock.Handler().Routes()

	if group.Prefix != "/viewer" {
		t.Errorf("prefix: got %s, want /viewer", group.Prefix)
	}

	want := []struct {
		method  string
		pattern string
	}{
		{method: "GET", pattern: "/render"},
		{method: "GET", pattern: "/strategies"},
	}

	if len(group.Routes) != len(want) {
		t.Fatalf("routes: got %d, want %d", len(group.Routes), len(want))
	}

	for _, w := range want {
		found := false
		for _, route := range group.Routes {
			if route.Method == w.method && route.Pattern == w.pattern {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing route %s %s", w.method, w.pattern)
		}
	}
}
