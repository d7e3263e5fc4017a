// internal/database/db.go
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// ConnString assembles the postgres URL from the environment. DATABASE_URL wins when set.
func ConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		getEnv("PG_DATABASE", "monopoly"),
	)
}

// ConnectDB opens a pool and checks that the server answers.
func ConnectDB(ctx context.Context, logger logrus.FieldLogger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(ConnString())
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host":     config.ConnConfig.Host,
		"database": config.ConnConfig.Database,
	}).Info("connected to database")
	return pool, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
