package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLStore guarda os slots na tabela session_slots. As queries usam placeholders
// $N e upsert ON CONFLICT, aceitos tanto pelo PostgreSQL quanto pelo SQLite.
type SQLStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLStore cria um SQLStore. A tabela precisa existir (ver Migrate).
func NewSQLStore(db *sql.DB, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, timeout: timeout}
}

const (
	selectSlotSQL = `SELECT slot_value FROM session_slots WHERE slot_key = $1`
	upsertSlotSQL = `INSERT INTO session_slots (slot_key, slot_value, updated_at)
                     VALUES ($1, $2, CURRENT_TIMESTAMP)
                     ON CONFLICT (slot_key) DO UPDATE
                     SET slot_value = EXCLUDED.slot_value, updated_at = CURRENT_TIMESTAMP`
	deleteSlotSQL = `DELETE FROM session_slots WHERE slot_key = $1`
)

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, selectSlotSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, upsertSlotSQL, key, value)
	return err
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, deleteSlotSQL, key)
	return err
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
