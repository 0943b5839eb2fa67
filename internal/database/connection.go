package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/config"
)

// Pinger is the part of the connection the health check needs
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewConnection opens the PostgreSQL pool and verifies it with a ping
func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sqlx.Connect("postgres", withSimpleProtocol(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// withSimpleProtocol adds the pooler compatibility flag when absent.
// Transaction-mode poolers reject the extended protocol's cached statements.
func withSimpleProtocol(url string) string {
	if strings.Contains(url, "prefer_simple_protocol") {
		return url
	}
	separator := "?"
	if strings.Contains(url, "?") {
		separator = "&"
	}
	return url + separator + "prefer_simple_protocol=true"
}
