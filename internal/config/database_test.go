package config

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSetupDatabase_SQLite(t *testing.T) {
	cfg := &DatabaseConfig{
		Driver: DriverSQLite,
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "books.db")},
		Pool: PoolConfig{
			MaxIdleConns:    5,
			MaxOpenConns:    50,
			ConnMaxLifetime: "30m",
		},
	}

	db, err := SetupDatabase(cfg, discardLogger())
	if err != nil {
		t.Fatalf("SetupDatabase() error = %v", err)
	}
	t.Cleanup(func() { CloseDatabase(db) })

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 50 {
		t.Errorf("MaxOpenConnections = %d; want 50", got)
	}
}

func TestSetupDatabase_PoolDefaults(t *testing.T) {
	cfg := &DatabaseConfig{
		Driver: DriverSQLite,
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "books.db")},
	}

	db, err := SetupDatabase(cfg, discardLogger())
	if err != nil {
		t.Fatalf("SetupDatabase() error = %v", err)
	}
	t.Cleanup(func() { CloseDatabase(db) })

	sqlDB, _ := db.DB()
	if got := sqlDB.Stats().MaxOpenConnections; got != 100 {
		t.Errorf("MaxOpenConnections = %d; want 100", got)
	}
}

func TestSetupDatabase_Errors(t *testing.T) {
	if _, err := SetupDatabase(nil, discardLogger()); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := SetupDatabase(&DatabaseConfig{Driver: DriverSQLite}, nil); err == nil {
		t.Error("expected error for nil logger")
	}

	_, err := SetupDatabase(&DatabaseConfig{Driver: DriverMongo}, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "unsupported sql driver") {
		t.Errorf("SetupDatabase(mongo) error = %v, want unsupported sql driver", err)
	}
}

func TestResolvePool(t *testing.T) {
	tests := []struct {
		name string
		cfg  PoolConfig
		want poolSettings
	}{
		{"defaults", PoolConfig{}, poolSettings{10, 100, time.Hour}},
		{"explicit", PoolConfig{MaxIdleConns: 2, MaxOpenConns: 4, ConnMaxLifetime: "5m"}, poolSettings{2, 4, 5 * time.Minute}},
		{"unparsable lifetime", PoolConfig{ConnMaxLifetime: "eventually"}, poolSettings{10, 100, time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePool(&tt.cfg); got != tt.want {
				t.Errorf("resolvePool() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *PostgresConfig
		want string
	}{
		{"nil", nil, ""},
		{
			"full",
			&PostgresConfig{Host: "db", Port: 5432, User: "books", Password: "p@ss word", DBName: "catalog", SSLMode: "require"},
			"postgres://books:p%40ss%20word@db:5432/catalog?sslmode=require",
		},
		{
			"ipv6 without credentials",
			&PostgresConfig{Host: "::1", Port: 5432, DBName: "catalog"},
			"postgres://[::1]:5432/catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildPostgresDSN(tt.cfg); got != tt.want {
				t.Errorf("buildPostgresDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
