package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/simp-lee/bookstore/internal/config"
	"github.com/simp-lee/bookstore/internal/middleware"
	"github.com/simp-lee/bookstore/internal/module/book"
	"github.com/simp-lee/bookstore/internal/observability"
)

const shutdownTimeout = 5 * time.Second

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine  *gin.Engine
	store   *Store
	logger  *logger.Logger
	tracing observability.ShutdownFunc
	cfg     *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from cfg: logging, tracing,
// the book store, the book module, middleware and routes.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	shutdownTracing, err := observability.InitTracing(ctx, &cfg.Tracing, config.Component(log.Logger, "tracing"))
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if success {
			return
		}
		_ = shutdownTracing(context.Background())
	}()

	store, err := OpenStore(ctx, &cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := store.Close(context.Background()); err != nil {
			slog.Error("store close error", slog.Any("error", err))
		}
	}()

	if cfg.Database.Seed {
		if err := book.Seed(ctx, store.Repo, log.Logger); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	// Manual dependency injection: repository → service → handler.
	svc := book.NewBookService(store.Repo, config.Component(log.Logger, "book"))
	handler := book.NewBookHandler(svc)

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(middleware.Recovery(log.Logger))
	if cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	engine.Use(
		middleware.RequestID(middleware.RequestIDConfig{TrustUpstream: cfg.Server.TrustRequestID}),
		middleware.Logger(log.Logger),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{book.NewModule(handler)},
		Store:   store.Repo,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	log.Info("application ready",
		slog.String("driver", store.Driver),
		slog.String("mode", cfg.Server.Mode),
		slog.Bool("tracing", cfg.Tracing.Enabled),
	)

	success = true
	return &App{
		engine:  engine,
		store:   store,
		logger:  log,
		tracing: shutdownTracing,
		cfg:     cfg,
	}, nil
}

// Handler exposes the configured HTTP handler.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Run starts the HTTP server and blocks until a shutdown signal is received
// or the server fails. It then drains in-flight requests, flushes spans and
// releases the store.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if runErr == nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.tracing != nil {
		if err := a.tracing(shutdownCtx); err != nil {
			log.Error("tracing shutdown error", slog.Any("error", err))
		}
	}

	if err := a.store.Close(shutdownCtx); err != nil {
		log.Error("store close error", slog.Any("error", err))
	} else if a.store != nil {
		log.Info("store closed", slog.String("driver", a.store.Driver))
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
