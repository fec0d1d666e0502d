package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/irccwatch/internal/dbx"
)

// DefaultProfile is the tokens row used when no profile is configured.
const DefaultProfile = "default"

// SQLiteStore keeps the token in the local database so a session survives
// client restarts within its TTL. Expired rows are deleted lazily by Get.
type SQLiteStore struct {
	db      *sql.DB
	profile string
	now     func() time.Time
}

func NewSQLiteStore(db *sql.DB, profile string) *SQLiteStore {
	if profile == "" {
		profile = DefaultProfile
	}
	return &SQLiteStore{db: db, profile: profile, now: time.Now}
}

func (s *SQLiteStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	if err := validate(token, ttl); err != nil {
		return err
	}
	t := tokens.Token{Profile: s.profile, Value: token, ExpiresAt: s.now().Add(ttl)}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return tokens.NewSQLiteRepository(tx).Save(ctx, t)
	})
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	repo := tokens.NewSQLiteRepository(s.db)

	t, err := repo.Get(ctx, s.profile)
	if err != nil {
		return "", false, err
	}
	if t == nil {
		return "", false, nil
	}
	if !s.now().Before(t.ExpiresAt) {
		if err := repo.Delete(ctx, s.profile); err != nil {
			return "", false, fmt.Errorf("drop expired token: %w", err)
		}
		return "", false, nil
	}
	return t.Value, true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return tokens.NewSQLiteRepository(s.db).Delete(ctx, s.profile)
}
