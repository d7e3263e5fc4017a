// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for game action logs.
const DefaultQueueName = "monopoly_actions"

// GameActionRecord holds the minimal info needed by the historian.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorID       uuid.UUID              `json:"actor_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// ConnectRedis opens a Redis client configured from the environment:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Pusher is the slice of the Redis client a Publisher needs.
type Pusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Publisher pushes action records onto the historian queue.
type Publisher struct {
	rdb   Pusher
	queue string
}

// NewPublisher builds a publisher on the queue named by HISTORIAN_QUEUE_NAME.
func NewPublisher(rdb Pusher) *Publisher {
	return &Publisher{rdb: rdb, queue: QueueName()}
}

// Queue is the list the publisher writes to.
func (p *Publisher) Queue() string { return p.queue }

// Publish serializes the record to JSON, then pushes it to the Redis queue.
func (p *Publisher) Publish(ctx context.Context, record GameActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// QueueName is the historian queue configured in the environment.
func QueueName() string {
	return getEnv("HISTORIAN_QUEUE_NAME", DefaultQueueName)
}

// DecodeRecord parses one queued record.
func DecodeRecord(data string) (GameActionRecord, error) {
	var rec GameActionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return rec, fmt.Errorf("failed to unmarshal GameActionRecord: %w", err)
	}
	return rec, nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
