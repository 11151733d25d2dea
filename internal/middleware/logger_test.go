package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

func setupLoggerRouter(log *slog.Logger, requestID gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(requestID)
	r.Use(Logger(log))

	r.GET("/books/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	r.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("mongo: server selection timeout"))
		c.Status(http.StatusServiceUnavailable)
	})
	r.POST("/books", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return r
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		method    string
		path      string
		wantLevel string
	}{
		{http.MethodGet, "/books/1", "level=INFO"},
		{http.MethodPost, "/books", "level=INFO"},
		{http.MethodGet, "/missing", "level=WARN"},
		{http.MethodGet, "/broken", "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var logBuf bytes.Buffer
			r := setupLoggerRouter(newTestLogger(&logBuf), RequestID(RequestIDConfig{}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			r.ServeHTTP(httptest.NewRecorder(), req)

			if !strings.Contains(logBuf.String(), tt.wantLevel) {
				t.Errorf("expected %s, got:\n%s", tt.wantLevel, logBuf.String())
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupLoggerRouter(newTestLogger(&logBuf), RequestID(RequestIDConfig{}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/2", nil))

	out := logBuf.String()
	for _, field := range []string{"msg=request", "method=GET", "path=/books/2", "route=/books/:id", "status=200", "bytes=2", "latency=", "client_ip="} {
		if !strings.Contains(out, field) {
			t.Errorf("expected log to contain %q, got:\n%s", field, out)
		}
	}
	if strings.Contains(out, "trace_id=") {
		t.Errorf("unexpected trace_id without an active span:\n%s", out)
	}
}

func TestLogger_IncludesContextErrors(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupLoggerRouter(newTestLogger(&logBuf), RequestID(RequestIDConfig{}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	if !strings.Contains(logBuf.String(), "server selection timeout") {
		t.Errorf("expected error in log, got:\n%s", logBuf.String())
	}
}

func TestLogger_IncludesRequestIDFromContext(t *testing.T) {
	var logBuf bytes.Buffer
	log, err := logger.New(
		logger.WithConsoleWriter(&logBuf),
		logger.WithConsoleFormat(logger.FormatText),
		logger.WithConsoleColor(false),
		logger.WithLevel(slog.LevelDebug),
		logger.WithMiddleware(logger.ContextMiddleware()),
	)
	if err != nil {
		t.Fatalf("logger.New error: %v", err)
	}
	defer log.Close()

	r := setupLoggerRouter(log.Logger, RequestID(RequestIDConfig{TrustUpstream: true}))
	r.ServeHTTP(httptest.NewRecorder(), func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
		req.Header.Set(requestIDHeader, "test-req-id-789")
		return req
	}())

	if !strings.Contains(logBuf.String(), "test-req-id-789") {
		t.Errorf("expected log to contain request_id, got:\n%s", logBuf.String())
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	if Logger(nil) == nil {
		t.Fatal("Logger(nil) returned nil")
	}
}
