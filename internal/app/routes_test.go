package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/bookstore/internal/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct {
	err   error
	block bool
}

func (p fakePinger) Ping(ctx context.Context) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.err
}

type mockModule struct {
	called bool
}

func (m *mockModule) RegisterRoutes(r gin.IRouter) {
	m.called = true
	r.GET("/books/", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func setupTestRouter(t *testing.T, store Pinger) *gin.Engine {
	t.Helper()
	r := gin.New()
	if err := RegisterRoutes(r, &RouteDeps{Modules: []Module{&mockModule{}}, Store: store}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	return r
}

func getHealth(t *testing.T, r http.Handler) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return w.Code, body
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		store      Pinger
		wantCode   int
		wantStatus string
		wantStore  string
	}{
		{"ok", fakePinger{}, http.StatusOK, "ok", "ok"},
		{"store down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "degraded", "error"},
		{"no store", nil, http.StatusServiceUnavailable, "degraded", "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getHealth(t, setupTestRouter(t, tt.store))

			if code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status field = %v, want %q", body["status"], tt.wantStatus)
			}
			components, _ := body["components"].(map[string]any)
			if components["store"] != tt.wantStore {
				t.Errorf("components.store = %v, want %q", components["store"], tt.wantStore)
			}
		})
	}
}

func TestHealthHandler_PingIsBounded(t *testing.T) {
	r := setupTestRouter(t, fakePinger{block: true})

	start := time.Now()
	code, _ := getHealth(t, r)

	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
	if elapsed := time.Since(start); elapsed > 3*healthTimeout {
		t.Errorf("health check took %v, want about %v", elapsed, healthTimeout)
	}
}

func TestNoRouteHandler_JSON(t *testing.T) {
	r := setupTestRouter(t, fakePinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authors", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Code != http.StatusNotFound || resp.Message != "not found" {
		t.Errorf("response = %+v", resp)
	}
}

func TestRegisterRoutes_Errors(t *testing.T) {
	if err := RegisterRoutes(nil, &RouteDeps{}); err == nil {
		t.Error("nil router: want error")
	}
	if err := RegisterRoutes(gin.New(), nil); err == nil {
		t.Error("nil deps: want error")
	}
	if err := RegisterRoutes(gin.New(), &RouteDeps{}); err == nil {
		t.Error("no modules: want error")
	}
	if err := RegisterRoutes(gin.New(), &RouteDeps{Modules: []Module{nil}}); err == nil {
		t.Error("nil module: want error")
	}
}

func TestRegisterRoutes_ModulesAreCalled(t *testing.T) {
	m := &mockModule{}
	if err := RegisterRoutes(gin.New(), &RouteDeps{Modules: []Module{m}}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	if !m.called {
		t.Error("module RegisterRoutes was not called")
	}
}
