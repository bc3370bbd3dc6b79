package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"
)

// Open connects to the store. Supported drivers are "sqlite" and "pgx".
func Open(ctx context.Context, driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		dir := filepath.Dir(connection)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	system := semconv.DBSystemSqlite
	if driver == "pgx" {
		system = semconv.DBSystemPostgreSQL
	}

	// Queries are traced through otelsql so spans nest under the request span.
	sqlDB, err := otelsql.Open(driver, connection, otelsql.WithAttributes(system))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	db := sqlx.NewDb(sqlDB, driver)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if driver == "sqlite" {
		// Single writer avoids SQLITE_BUSY under concurrent submissions.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
