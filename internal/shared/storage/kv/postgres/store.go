package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"resume-platform/internal/shared/storage/kv"
)

// Store implements kv.Store over the kv_hash and kv_set tables created by
// the db package migrations.
type Store struct {
	DB *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	args := make([]any, 0, 1+2*len(names))
	args = append(args, key)
	rows := make([]string, 0, len(names))
	for i, field := range names {
		rows = append(rows, fmt.Sprintf("($1, $%d, $%d)", 2*i+2, 2*i+3))
		args = append(args, field, fields[field])
	}

	query := `
INSERT INTO kv_hash (key, field, value)
VALUES ` + strings.Join(rows, ", ") + `
ON CONFLICT (key, field) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres hset key=%s: %w", key, err)
	}
	return nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	const query = `
SELECT field, value
FROM kv_hash
WHERE key = $1`
	rows, err := s.DB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("postgres hgetall key=%s: %w", key, err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, err
		}
		out[field] = value
	}
	return out, rows.Err()
}

func (s *Store) HGet(ctx context.Context, key, field string) (string, bool, error) {
	const query = `
SELECT value
FROM kv_hash
WHERE key = $1 AND field = $2
LIMIT 1`
	var value string
	err := s.DB.QueryRowContext(ctx, query, key, field).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres hget key=%s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) HExists(ctx context.Context, key, field string) (bool, error) {
	_, ok, err := s.HGet(ctx, key, field)
	return ok, err
}

func (s *Store) SAdd(ctx context.Context, key, member string) error {
	const query = `
INSERT INTO kv_set (key, member)
VALUES ($1, $2)
ON CONFLICT (key, member) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, key, member); err != nil {
		return fmt.Errorf("postgres sadd key=%s: %w", key, err)
	}
	return nil
}

func (s *Store) SRem(ctx context.Context, key, member string) error {
	const query = `DELETE FROM kv_set WHERE key = $1 AND member = $2`
	if _, err := s.DB.ExecContext(ctx, query, key, member); err != nil {
		return fmt.Errorf("postgres srem key=%s: %w", key, err)
	}
	return nil
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	const query = `
SELECT member
FROM kv_set
WHERE key = $1
ORDER BY member`
	rows, err := s.DB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("postgres smembers key=%s: %w", key, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, err
		}
		out = append(out, member)
	}
	return out, rows.Err()
}

// Del removes both the hash and the set stored under key in one transaction.
func (s *Store) Del(ctx context.Context, key string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_hash WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres del hash key=%s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_set WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres del set key=%s: %w", key, err)
	}
	return tx.Commit()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

var _ kv.Store = (*Store)(nil)
