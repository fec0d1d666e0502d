// Package tokenstore persists the bearer token of the current session.
//
// The medium is an implementation detail chosen by configuration: the local
// SQLite database (survives restarts), a cookie jar scoped to the backend
// URL, or plain memory. All of them honor the same contract:
//
//   - Get never returns a token whose TTL has elapsed;
//   - Clear is idempotent, and Get after Clear reports absence.
package tokenstore

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL matches the lifetime of the session cookie issued by the web client.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalidTTL      = errors.New("token ttl must be positive")
	ErrEmptyToken      = errors.New("empty token")
	ErrInsecureBaseURL = errors.New("cookie token store requires an https base url")
)

// Store holds at most one token.
type Store interface {
	Set(ctx context.Context, token string, ttl time.Duration) error
	// Get reports ok=false when no live token is stored.
	Get(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
}

func validate(token string, ttl time.Duration) error {
	if token == "" {
		return ErrEmptyToken
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
