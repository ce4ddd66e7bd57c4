// Package pgxsession is the reference session.Session implementation,
// backed by jackc/pgx/v5's pool. It is the only package in this module
// that imports pgx directly — everything upstream of it talks to the
// abstract session.Session/RecordBatch contract.
package pgxsession

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the parameters needed to connect to a PostgreSQL database.
// DSN, if set, is used directly; otherwise the individual fields are
// composed into a connection string, falling back to standard PG*
// environment variables (handled by pgx).
type Config struct {
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
	DSN      string
	// MaxConns bounds the pool size; it should track
	// multisource.Config.MaxConcurrentValidations when suites run
	// concurrently over the same database.
	MaxConns int32
}

// Connect opens a read-only connection pool from cfg.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connStr := cfg.DSN
	if connStr == "" {
		connStr = buildConnString(cfg)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}
	poolConfig.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

func buildConnString(cfg Config) string {
	parts := ""
	if cfg.Host != "" {
		parts += fmt.Sprintf("host=%s ", cfg.Host)
	}
	if cfg.Port != 0 {
		parts += fmt.Sprintf("port=%d ", cfg.Port)
	}
	if cfg.DBName != "" {
		parts += fmt.Sprintf("dbname=%s ", cfg.DBName)
	}
	if cfg.User != "" {
		parts += fmt.Sprintf("user=%s ", cfg.User)
	}
	if cfg.Password != "" {
		parts += fmt.Sprintf("password=%s ", cfg.Password)
	}
	return parts
}
