package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records statements; only the methods the store uses are implemented.
type fakeTx struct {
	pgx.Tx
	calls      []execCall
	failOn     string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx  *fakeTx
	err error
}

func (f *fakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func newFakeStore() (*Store, *fakeTx) {
	tx := &fakeTx{}
	return NewStore(&fakeDB{tx: tx}), tx
}

func TestInsertActionsSingleTransaction(t *testing.T) {
	store, tx := newFakeStore()
	gameID, actor := uuid.New(), uuid.New()
	recs := []cache.GameActionRecord{
		{GameID: gameID, ActionIndex: 1, ActorID: actor, ActionType: "player_roll", ActionPayload: map[string]interface{}{"dice": []int{3, 4}}, Timestamp: 1000},
		{GameID: gameID, ActionIndex: 2, ActorID: actor, ActionType: "player_move", Timestamp: 1001},
	}

	require.NoError(t, store.InsertActions(context.Background(), recs))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	require.Len(t, tx.calls, 4, "game upsert and action insert per record")

	insert := tx.calls[1]
	assert.Contains(t, insert.sql, "INSERT INTO game_actions")
	assert.Equal(t, gameID, insert.args[0])
	assert.Equal(t, 1, insert.args[1])
	assert.Equal(t, "player_roll", insert.args[3])
	assert.JSONEq(t, `{"dice":[3,4]}`, string(insert.args[4].([]byte)))
	assert.Equal(t, "null", string(tx.calls[3].args[4].([]byte)))
}

func TestInsertActionsEndMarksCompleted(t *testing.T) {
	store, tx := newFakeStore()
	rec := cache.GameActionRecord{GameID: uuid.New(), ActionIndex: 9, ActionType: endAction}

	require.NoError(t, store.InsertActions(context.Background(), []cache.GameActionRecord{rec}))
	require.Len(t, tx.calls, 3)
	assert.Contains(t, tx.calls[2].sql, "UPDATE games")
	assert.Equal(t, "completed", tx.calls[2].args[1])
}

func TestInsertActionsRollsBackOnError(t *testing.T) {
	store, tx := newFakeStore()
	tx.failOn = "game_actions"
	rec := cache.GameActionRecord{GameID: uuid.New(), ActionIndex: 1}

	err := store.InsertActions(context.Background(), []cache.GameActionRecord{rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert action 1")
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestInsertActionsEmptyBatch(t *testing.T) {
	store := NewStore(&fakeDB{err: errors.New("no connection")})
	assert.NoError(t, store.InsertActions(context.Background(), nil))
}

func TestMarkGame(t *testing.T) {
	store, tx := newFakeStore()
	id := uuid.New()

	require.NoError(t, store.MarkGameAbandoned(context.Background(), id))
	require.NoError(t, store.MarkGameCompleted(context.Background(), id))
	require.Len(t, tx.calls, 2)
	assert.Equal(t, []any{id, "abandoned"}, tx.calls[0].args)
	assert.Equal(t, []any{id, "completed"}, tx.calls[1].args)
	assert.Contains(t, tx.calls[0].sql, "status = 'in_progress'")

	failing := NewStore(&fakeDB{err: errors.New("down")})
	assert.ErrorContains(t, failing.MarkGameAbandoned(context.Background(), id), "down")
}

func TestEnsureSchema(t *testing.T) {
	store, tx := newFakeStore()
	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, tx.calls, 1)
	assert.Contains(t, tx.calls[0].sql, "CREATE TABLE IF NOT EXISTS game_actions")
}

func TestConnString(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("PG_HOST", "")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_DATABASE", "")
	assert.Equal(t, "postgres://u:p@localhost:6543/monopoly", ConnString())

	t.Setenv("DATABASE_URL", "postgres://elsewhere/db")
	assert.Equal(t, "postgres://elsewhere/db", ConnString())
}
