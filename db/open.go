// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

func init() {
	// sqlx does not know the modernc driver name; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dbType, url string) (*sqlx.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if dbType == TypeSQLite {
		// One writer at a time; also keeps :memory: databases on a single connection.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}
