package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		value     []byte
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, updated_at FROM cache WHERE key = ?`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache[%s]: %w", key, err)
	}
	return &Entry{Value: value, UpdatedAt: time.UnixMilli(updatedAt)}, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache`)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
