package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/psomsri/taladsod-backend/internal/app/model"
)

// memoryCartRepository keeps cart slots in process memory. It backs tests
// and single-node deployments running without Redis, with the same
// replace-whole-slot semantics as the Redis implementation.
type memoryCartRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{slots: make(map[string][]byte)}
}

func (r *memoryCartRepository) Save(ctx context.Context, profileID string, items []model.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[profileID] = data
	return nil
}

func (r *memoryCartRepository) Load(ctx context.Context, profileID string) ([]model.CartItem, error) {
	r.mu.RLock()
	data, ok := r.slots[profileID]
	r.mu.RUnlock()
	if !ok {
		return []model.CartItem{}, nil
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (r *memoryCartRepository) Clear(ctx context.Context, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, profileID)
	return nil
}
