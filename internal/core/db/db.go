// Package db provides database connection management, migrations and graph
// persistence.
//
// Supports SQLite (development) and PostgreSQL (production) via sqlx for
// connection pooling and query helpers. Migrations are embedded SQL files
// applied by a small runner; queries are named statements loaded with dotsql.
package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Pool limits per process. PostgreSQL allows 100 connections by default,
// shared by a handful of filter service instances.
const (
	maxOpenConns    = 16
	maxIdleConns    = 4
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// Open is OpenContext with a background context.
func Open(dbURL string) (*sqlx.DB, error) {
	return OpenContext(context.Background(), dbURL)
}

// OpenContext opens the database named by dbURL, applies the pool limits and
// pings it.
func OpenContext(ctx context.Context, dbURL string) (*sqlx.DB, error) {
	driverName, dataSource, err := dataSourceOf(dbURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// dataSourceOf maps a database URL to a driver name and its DSN.
//
//	sqlite://graph.db             relative file
//	sqlite:///var/lib/graph.db    absolute file
//	postgres://user@host/dbname   passed through to lib/pq
//
// SQLite query parameters go to go-sqlite3 as is; _foreign_keys defaults to on
// so link rows cannot outlive their nodes.
func dataSourceOf(dbURL string) (string, string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return "", "", fmt.Errorf("invalid database URL: sqlite path is empty")
		}
		q := u.Query()
		if q.Get("_foreign_keys") == "" {
			q.Set("_foreign_keys", "on")
		}
		return "sqlite3", path + "?" + q.Encode(), nil
	case "postgres", "postgresql":
		return "postgres", dbURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme: %s (expected sqlite or postgres)", u.Scheme)
	}
}
