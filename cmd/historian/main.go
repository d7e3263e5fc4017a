// cmd/historian/main.go runs the historian: it drains the game action queue into PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/database"
	"github.com/jason-s-yu/monopoly/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, logger)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}
	defer pool.Close()

	store := database.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("could not prepare schema")
	}

	rdb, err := cache.ConnectRedis(ctx)
	if err != nil {
		logger.WithError(err).Fatal("redis unavailable")
	}
	defer rdb.Close()

	cfg := historian.Config{
		Queue:      cache.QueueName(),
		BatchSize:  getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		FlushDelay: time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		Inactivity: time.Duration(getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
	}
	historian.New(cfg, rdb, store, logger).Run(ctx)
	logger.Info("historian shutdown complete")
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer value from an environment variable or returns a default value.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
