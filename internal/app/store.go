package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/simp-lee/bookstore/internal/config"
	"github.com/simp-lee/bookstore/internal/domain"
	"github.com/simp-lee/bookstore/internal/module/book"
)

// Store is the opened book store together with its release hook.
type Store struct {
	Driver string
	Repo   domain.BookRepository
	close  func(ctx context.Context) error
}

// Close releases the underlying client or connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStore connects the repository selected by cfg.Driver. With
// AutoMigrate set, the books table or the mongo indexes are created.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverMongo:
		return openMongoStore(ctx, cfg, log)
	case config.DriverSQLite, config.DriverPostgres:
		return openSQLStore(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func openMongoStore(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	client, err := config.SetupMongo(ctx, &cfg.Mongo, config.Component(log, "mongo"))
	if err != nil {
		return nil, err
	}
	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	if cfg.AutoMigrate {
		if err := book.EnsureIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info("mongo indexes ensured", slog.String("collection", cfg.Mongo.Collection))
	}

	return &Store{
		Driver: cfg.Driver,
		Repo:   book.NewMongoRepository(coll),
		close:  client.Disconnect,
	}, nil
}

func openSQLStore(cfg *config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	db, err := config.SetupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := book.AutoMigrate(db); err != nil {
			_ = config.CloseDatabase(db)
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	return &Store{
		Driver: cfg.Driver,
		Repo:   book.NewGormRepository(db),
		close:  func(context.Context) error { return config.CloseDatabase(db) },
	}, nil
}
