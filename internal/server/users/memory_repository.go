package users

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory, keyed by lower-cased e-mail.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(user.Email)
	if _, ok := r.users[k]; ok {
		return nil, shared.ErrorAlreadyExists
	}

	u := *user
	u.ID = uuid.NewString()
	u.Email = k
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[k] = u

	return &u, nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[key(email)]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(user.Email)
	if _, ok := r.users[k]; !ok {
		return shared.ErrorNotFound
	}
	r.users[k] = *user
	return nil
}

// List returns all users ordered by e-mail.
func (r *MemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.Email, b.Email) })
	return out, nil
}
