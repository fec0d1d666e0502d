package tokens

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

func (r *SQLiteRepository) Get(ctx context.Context, profile string) (*Token, error) {
	var (
		value     string
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM tokens WHERE profile = ?`, profile,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token[%s]: %w", profile, err)
	}
	return &Token{Profile: profile, Value: value, ExpiresAt: time.UnixMilli(expiresAt)}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, t Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (profile, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, t.Profile, t.Value, t.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save token[%s]: %w", t.Profile, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, profile string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE profile = ?`, profile)
	if err != nil {
		return fmt.Errorf("failed to delete token[%s]: %w", profile, err)
	}
	return nil
}
