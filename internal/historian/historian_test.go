// internal/historian/historian_test.go
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQueue serves queued payloads, then reports an empty list.
type fakeQueue struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (q *fakeQueue) push(t *testing.T, rec cache.GameActionRecord) {
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	q.mu.Lock()
	q.payloads = append(q.payloads, string(data))
	q.mu.Unlock()
}

func (q *fakeQueue) BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmd := redis.NewStringSliceCmd(ctx)
	switch {
	case q.err != nil:
		cmd.SetErr(q.err)
	case len(q.payloads) == 0:
		cmd.SetErr(redis.Nil)
	default:
		cmd.SetVal([]string{keys[0], q.payloads[0]})
		q.payloads = q.payloads[1:]
	}
	return cmd
}

type fakeSink struct {
	mu        sync.Mutex
	batches   [][]cache.GameActionRecord
	abandoned []uuid.UUID
	err       error
}

func (s *fakeSink) InsertActions(ctx context.Context, records []cache.GameActionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, records)
	return nil
}

func (s *fakeSink) MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandoned = append(s.abandoned, gameID)
	return nil
}

func (s *fakeSink) inserted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func record(gameID uuid.UUID, i int, typ string) cache.GameActionRecord {
	return cache.GameActionRecord{GameID: gameID, ActionIndex: i, ActorID: uuid.New(), ActionType: typ, Timestamp: time.Now().UnixMilli()}
}

func TestBatchFlushesWhenFull(t *testing.T) {
	q, sink := &fakeQueue{}, &fakeSink{}
	svc := New(Config{BatchSize: 2}, q, sink, quietLogger())
	game := uuid.New()
	for i := 1; i <= 3; i++ {
		q.push(t, record(game, i, "player_roll"))
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PopOnce(context.Background()))
	}
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 2)
	assert.Equal(t, 1, svc.Pending())

	svc.Flush(context.Background())
	assert.Equal(t, 3, sink.inserted())
	assert.Zero(t, svc.Pending())
}

func TestEmptyQueueAndBadPayloads(t *testing.T) {
	q, sink := &fakeQueue{payloads: []string{"not json"}}, &fakeSink{}
	svc := New(Config{}, q, sink, quietLogger())

	require.NoError(t, svc.PopOnce(context.Background()))
	require.NoError(t, svc.PopOnce(context.Background()))
	assert.Zero(t, svc.Pending())

	q.err = errors.New("connection refused")
	assert.Error(t, svc.PopOnce(context.Background()))
}

func TestFailedFlushKeepsBatch(t *testing.T) {
	q, sink := &fakeQueue{}, &fakeSink{err: errors.New("db down")}
	svc := New(Config{BatchSize: 10}, q, sink, quietLogger())
	q.push(t, record(uuid.New(), 1, "player_roll"))
	require.NoError(t, svc.PopOnce(context.Background()))

	svc.Flush(context.Background())
	assert.Equal(t, 1, svc.Pending())

	sink.err = nil
	svc.Flush(context.Background())
	assert.Zero(t, svc.Pending())
	assert.Equal(t, 1, sink.inserted())
}

func TestSweepMarksQuietGamesAbandoned(t *testing.T) {
	q, sink := &fakeQueue{}, &fakeSink{}
	svc := New(Config{Inactivity: time.Minute}, q, sink, quietLogger())
	clock := time.Now()
	svc.now = func() time.Time { return clock }

	quiet, busy, finished := uuid.New(), uuid.New(), uuid.New()
	q.push(t, record(quiet, 1, "player_roll"))
	q.push(t, record(finished, 1, "player_roll"))
	q.push(t, record(finished, 2, endAction))
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PopOnce(context.Background()))
	}

	clock = clock.Add(2 * time.Minute)
	q.push(t, record(busy, 1, "player_roll"))
	require.NoError(t, svc.PopOnce(context.Background()))

	svc.Sweep(context.Background())
	assert.Equal(t, []uuid.UUID{quiet}, sink.abandoned)

	svc.Sweep(context.Background())
	assert.Len(t, sink.abandoned, 1, "a game is only abandoned once")
}

func TestRunFlushesOnShutdown(t *testing.T) {
	q, sink := &fakeQueue{}, &fakeSink{}
	svc := New(Config{BatchSize: 100, FlushDelay: time.Hour, PopTimeout: time.Millisecond}, q, sink, quietLogger())
	for i := 1; i <= 5; i++ {
		q.push(t, record(uuid.New(), i, "player_move"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return svc.Pending() == 5 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 5, sink.inserted())
}
