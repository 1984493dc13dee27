package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-platform/internal/shared/telemetry"
)

const defaultPingTimeout = 5 * time.Second

var errEmptyURL = errors.New("DATABASE_URL is empty")

// Pool sizes the *sql.DB behind the postgres kv backend.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

var openDB = sql.Open

// ServerPool is sized for the long-running API process.
func ServerPool() Pool {
	return Pool{
		MaxOpen:     10,
		MaxIdle:     5,
		MaxLifetime: time.Hour,
		MaxIdleTime: 2 * time.Minute,
		PingTimeout: defaultPingTimeout,
	}
}

// MigratePool holds a single connection for one-shot migration runs.
func MigratePool() Pool {
	p := ServerPool()
	p.MaxOpen, p.MaxIdle = 1, 1
	return p
}

// Override replaces every positive value of o in p.
func (p Pool) Override(o Pool) Pool {
	if o.MaxOpen > 0 {
		p.MaxOpen = o.MaxOpen
	}
	if o.MaxIdle > 0 {
		p.MaxIdle = o.MaxIdle
	}
	if o.MaxLifetime > 0 {
		p.MaxLifetime = o.MaxLifetime
	}
	if o.MaxIdleTime > 0 {
		p.MaxIdleTime = o.MaxIdleTime
	}
	if o.PingTimeout > 0 {
		p.PingTimeout = o.PingTimeout
	}
	return p
}

// Connect opens a pgx-backed *sql.DB and pings it before returning.
func Connect(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errEmptyURL
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool = ServerPool().Override(pool)
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
		"max_open": stats.MaxOpenConnections,
	})
	return db, nil
}
