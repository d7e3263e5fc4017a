// internal/historian/historian.go pops game action records from a Redis queue and
// persists them to PostgreSQL in batches.
package historian

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const endAction = "game_end"

// Popper is the slice of the Redis client the historian reads with.
type Popper interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Sink stores flushed batches.
type Sink interface {
	InsertActions(ctx context.Context, records []cache.GameActionRecord) error
	MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error
}

// Config tunes batching and abandonment.
type Config struct {
	Queue       string
	BatchSize   int
	FlushDelay  time.Duration
	PopTimeout  time.Duration
	Inactivity  time.Duration // a game silent this long is marked abandoned
	SweepPeriod time.Duration
}

// DefaultConfig mirrors the environment defaults.
func DefaultConfig() Config {
	return Config{
		Queue:       cache.DefaultQueueName,
		BatchSize:   20,
		FlushDelay:  500 * time.Millisecond,
		PopTimeout:  3 * time.Second,
		Inactivity:  10 * time.Minute,
		SweepPeriod: time.Minute,
	}
}

// Service batches queued actions into the sink and marks quiet games abandoned.
type Service struct {
	cfg    Config
	queue  Popper
	sink   Sink
	logger logrus.FieldLogger

	lastActivity sync.Map // map[uuid.UUID]time.Time
	now          func() time.Time

	batchMu sync.Mutex
	batch   []cache.GameActionRecord
}

// New builds a service. Zero config fields take their defaults.
func New(cfg Config, queue Popper, sink Sink, logger logrus.FieldLogger) *Service {
	def := DefaultConfig()
	if cfg.Queue == "" {
		cfg.Queue = def.Queue
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushDelay <= 0 {
		cfg.FlushDelay = def.FlushDelay
	}
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = def.PopTimeout
	}
	if cfg.Inactivity <= 0 {
		cfg.Inactivity = def.Inactivity
	}
	if cfg.SweepPeriod <= 0 {
		cfg.SweepPeriod = def.SweepPeriod
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		cfg:    cfg,
		queue:  queue,
		sink:   sink,
		logger: logger.WithField("queue", cfg.Queue),
		now:    time.Now,
		batch:  make([]cache.GameActionRecord, 0, cfg.BatchSize),
	}
}

// Run reads the queue until ctx is cancelled, then flushes what is left.
func (s *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		s.readLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		s.every(ctx, s.cfg.FlushDelay, func() { s.Flush(context.Background()) })
	}()
	go func() {
		defer wg.Done()
		s.every(ctx, s.cfg.SweepPeriod, func() { s.Sweep(context.Background()) })
	}()

	s.logger.Info("historian started")
	wg.Wait()
	s.Flush(context.Background())
	s.logger.Info("historian stopped")
}

func (s *Service) every(ctx context.Context, d time.Duration, fn func()) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func (s *Service) readLoop(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.PopOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WithError(err).Error("BLPop failed")
			time.Sleep(s.cfg.FlushDelay)
		}
	}
}

// PopOnce waits up to PopTimeout for one record and adds it to the batch.
// Undecodable payloads are logged and dropped.
func (s *Service) PopOnce(ctx context.Context) error {
	res, err := s.queue.BLPop(ctx, s.cfg.PopTimeout, s.cfg.Queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	// res[0] is the queue name, res[1] the payload
	if len(res) < 2 {
		return nil
	}
	rec, err := cache.DecodeRecord(res[1])
	if err != nil {
		s.logger.WithError(err).Warn("dropping invalid action record")
		return nil
	}
	if rec.ActionType == endAction {
		s.lastActivity.Delete(rec.GameID)
	} else {
		s.lastActivity.Store(rec.GameID, s.now())
	}
	s.add(ctx, rec)
	return nil
}

func (s *Service) add(ctx context.Context, rec cache.GameActionRecord) {
	s.batchMu.Lock()
	s.batch = append(s.batch, rec)
	full := len(s.batch) >= s.cfg.BatchSize
	s.batchMu.Unlock()
	if full {
		s.Flush(ctx)
	}
}

// Pending is the number of records waiting for the next flush.
func (s *Service) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return len(s.batch)
}

// Flush writes the current batch in one call to the sink. A failed batch stays
// queued for the next attempt.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	if len(s.batch) == 0 {
		return
	}
	pending := make([]cache.GameActionRecord, len(s.batch))
	copy(pending, s.batch)

	if err := s.sink.InsertActions(ctx, pending); err != nil {
		s.logger.WithError(err).WithField("count", len(pending)).Error("flush failed")
		return
	}
	s.batch = s.batch[:0]
	s.logger.WithField("count", len(pending)).Debug("flushed actions")
}

// Sweep marks every game that has been silent past the inactivity threshold as abandoned.
func (s *Service) Sweep(ctx context.Context) {
	now := s.now()
	s.lastActivity.Range(func(key, val interface{}) bool {
		gameID, ok1 := key.(uuid.UUID)
		last, ok2 := val.(time.Time)
		if !ok1 || !ok2 || now.Sub(last) <= s.cfg.Inactivity {
			return true
		}
		log := s.logger.WithField("game", gameID)
		if err := s.sink.MarkGameAbandoned(ctx, gameID); err != nil {
			log.WithError(err).Error("failed to mark game abandoned")
			return true
		}
		s.lastActivity.Delete(gameID)
		log.Info("marked game abandoned due to inactivity")
		return true
	})
}
