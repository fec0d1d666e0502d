package tokens

import (
	"context"
	"time"
)

// Token is a persisted bearer token for one local profile.
type Token struct {
	Profile   string
	Value     string
	ExpiresAt time.Time
}

// Repository persists at most one token per profile.
type Repository interface {
	// Get returns (nil, nil) when the profile has no token.
	Get(ctx context.Context, profile string) (*Token, error)
	Save(ctx context.Context, t Token) error
	Delete(ctx context.Context, profile string) error
}
