// Package db owns database connectivity and schema migrations.
package db

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pulseboard/pulseboard-backend/config"
	"github.com/pulseboard/pulseboard-backend/logger"
)

// NewPool creates a pgx connection pool from the database configuration.
// Production connections require TLS 1.2+.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	log := logger.GetLogger()

	sslmode := cfg.Database.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		sslmode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.Database.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxConnections)
	}
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Infow("Connected to database",
		"host", cfg.Database.Host,
		"database", cfg.Database.Name,
		"url", logger.MaskConnectionString(cfg.Database.URL()),
	)
	return pool, nil
}
