// Package postgres opens the registry database. The codebase is mid-migration
// from database/sql to pgx: registry and audit stores still run on lib/pq
// while the compatibility store uses pgxpool, so both handles are opened
// against the same database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// Handles bundles the two driver handles sharing one database.
type Handles struct {
	DB   *sql.DB
	Pool *pgxpool.Pool
}

// Open connects both drivers and verifies connectivity.
// Returns nil if the URL is empty (Postgres not configured).
func Open(ctx context.Context, url string) (*Handles, error) {
	if url == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		db.Close()
		return nil, fmt.Errorf("pgx ping failed: %w", err)
	}

	return &Handles{DB: db, Pool: pool}, nil
}

// Health checks both driver handles.
func (h *Handles) Health(ctx context.Context) error {
	if err := h.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	if err := h.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgx handle: %w", err)
	}
	return nil
}

// Close releases both handles.
func (h *Handles) Close() {
	h.Pool.Close()
	_ = h.DB.Close()
}
