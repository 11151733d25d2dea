// Command seed upserts the sample catalog into the configured store
// without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/simp-lee/bookstore/internal/app"
	"github.com/simp-lee/bookstore/internal/config"
	"github.com/simp-lee/bookstore/internal/module/book"
)

func main() {
	_ = godotenv.Load(".env.local")

	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall seeding timeout")
	flag.Parse()

	if err := run(*configPath, *timeout); err != nil {
		log.Fatal("seed failed: ", err)
	}
}

func run(configPath string, timeout time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer logr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	store, err := app.OpenStore(ctx, &cfg.Database, logr.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logr.Error("store close error", slog.Any("error", err))
		}
	}()

	if err := book.Seed(ctx, store.Repo, config.Component(logr.Logger, "seed")); err != nil {
		return err
	}
	logr.Info("seed completed", slog.String("driver", store.Driver))
	return nil
}
