package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Set(_ context.Context, token string, ttl time.Duration) error {
	if err := validate(token, ttl); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false, nil
	}
	if !s.now().Before(s.expiresAt) {
		s.token = ""
		return "", false, nil
	}
	return s.token, true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
