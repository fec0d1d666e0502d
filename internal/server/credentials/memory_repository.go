package credentials

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Credential
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Credential)}
}

func (r *MemoryRepository) Create(_ context.Context, c *Credential) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := *c
	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items[item.ID] = item

	return &item, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) Update(_ context.Context, c *Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return shared.ErrorNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return shared.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]Credential, error) {
	return r.filter(func(c Credential) bool { return c.UserID == userID }), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Credential, error) {
	return r.filter(func(Credential) bool { return true }), nil
}

// filter returns matching items, oldest first.
func (r *MemoryRepository) filter(keep func(Credential) bool) []Credential {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Credential, 0, len(r.items))
	for _, c := range r.items {
		if keep(c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Credential) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
