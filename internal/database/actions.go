// internal/database/actions.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/monopoly/internal/cache"
)

// endAction is the action type the engine records when a game finishes.
const endAction = "game_end"

// Schema creates the audit tables when they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'in_progress',
	start_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS game_actions (
	game_id        UUID NOT NULL REFERENCES games (id),
	action_index   INTEGER NOT NULL,
	actor_id       UUID NOT NULL,
	action_type    TEXT NOT NULL,
	action_payload JSONB NOT NULL DEFAULT '{}',
	recorded_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (game_id, action_index)
);
`

// TxBeginner is the part of a pgx pool or connection the store needs.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Store persists the engine's action log.
type Store struct {
	db TxBeginner
}

// NewStore wraps a pool (or any TxBeginner).
func NewStore(db TxBeginner) *Store {
	return &Store{db: db}
}

// EnsureSchema runs Schema inside a transaction.
func (s *Store) EnsureSchema(ctx context.Context) error {
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, Schema)
		return e
	})
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertActions writes a batch of records in a single transaction. Each record
// upserts its game row; a game_end record also marks the game completed.
// Redelivered records are ignored.
func (s *Store) InsertActions(ctx context.Context, records []cache.GameActionRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertActionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insert action %d of game %v: %w", rec.ActionIndex, rec.GameID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx insert actions: %w", err)
	}
	return nil
}

func insertActionTx(ctx context.Context, tx pgx.Tx, rec cache.GameActionRecord) error {
	upsertGame := `
		INSERT INTO games (id, status, start_time)
		VALUES ($1, 'in_progress', NOW())
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, upsertGame, rec.GameID); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.ActionPayload)
	if err != nil {
		return err
	}
	insertAction := `
		INSERT INTO game_actions (
			game_id, action_index, actor_id, action_type, action_payload, recorded_at
		) VALUES ($1, $2, $3, $4, $5, to_timestamp($6::double precision / 1000))
		ON CONFLICT (game_id, action_index) DO NOTHING
	`
	_, err = tx.Exec(ctx, insertAction,
		rec.GameID, rec.ActionIndex, rec.ActorID, rec.ActionType, payload, rec.Timestamp,
	)
	if err != nil {
		return err
	}

	if rec.ActionType == endAction {
		return markGameTx(ctx, tx, rec.GameID, "completed")
	}
	return nil
}

// MarkGameCompleted closes an in-progress game.
func (s *Store) MarkGameCompleted(ctx context.Context, gameID uuid.UUID) error {
	return s.markGame(ctx, gameID, "completed")
}

// MarkGameAbandoned closes a game that went quiet. Games that already ended are left alone.
func (s *Store) MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error {
	return s.markGame(ctx, gameID, "abandoned")
}

func (s *Store) markGame(ctx context.Context, gameID uuid.UUID, status string) error {
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return markGameTx(ctx, tx, gameID, status)
	})
	if err != nil {
		return fmt.Errorf("mark game %v %s: %w", gameID, status, err)
	}
	return nil
}

func markGameTx(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, status string) error {
	q := `
		UPDATE games
		SET status = $2, end_time = NOW()
		WHERE id = $1 AND status = 'in_progress'
	`
	_, err := tx.Exec(ctx, q, gameID, status)
	return err
}
