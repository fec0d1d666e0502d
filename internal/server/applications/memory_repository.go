package applications

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]Record
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[string][]Record)}
}

func (r *MemoryRepository) Append(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.snapshots[rec.ApplicationNumber]
	if n := len(list); n > 0 && list[n-1].LastUpdatedTime >= rec.LastUpdatedTime {
		return fmt.Errorf("%w: snapshot %d is not newer than %d", shared.ErrorAlreadyExists, rec.LastUpdatedTime, list[n-1].LastUpdatedTime)
	}
	r.snapshots[rec.ApplicationNumber] = append(list, rec.clone())
	return nil
}

func (r *MemoryRepository) Latest(_ context.Context, number string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.snapshots[number]
	if len(list) == 0 {
		return Record{}, shared.ErrorNotFound
	}
	return list[len(list)-1].clone(), nil
}

func (r *MemoryRepository) At(_ context.Context, number string, ts int64) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.snapshots[number] {
		if rec.LastUpdatedTime == ts {
			return rec.clone(), nil
		}
	}
	return Record{}, shared.ErrorNotFound
}
