package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultMongoTimeout        = 5 * time.Second
	defaultMongoConnectTimeout = 10 * time.Second
)

// SetupMongo connects to MongoDB and verifies the primary is reachable.
// The caller must Disconnect the returned client on shutdown.
func SetupMongo(ctx context.Context, cfg *MongoConfig, log *slog.Logger) (*mongo.Client, error) {
	if cfg == nil {
		return nil, errors.New("mongo config is nil")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}

	opts := MongoClientOptions(cfg)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, effectiveDuration(cfg.ConnectTimeout, defaultMongoConnectTimeout))
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info("mongo connected",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
		slog.Duration("timeout", *opts.Timeout),
	)
	return client, nil
}

// MongoClientOptions translates cfg into driver options. Timeout bounds every
// operation issued through the client.
func MongoClientOptions(cfg *MongoConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(effectiveDuration(cfg.Timeout, defaultMongoTimeout)).
		SetConnectTimeout(effectiveDuration(cfg.ConnectTimeout, defaultMongoConnectTimeout)).
		SetServerSelectionTimeout(effectiveDuration(cfg.ConnectTimeout, defaultMongoConnectTimeout))
}

// effectiveDuration parses v, returning def for empty or invalid input.
// Values reaching here were already checked by Validate.
func effectiveDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
