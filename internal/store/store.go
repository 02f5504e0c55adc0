// Package store persists inventory save data per player.
package store

import (
	"context"
	"sync"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// Store loads and saves inventories keyed by owner id.
type Store interface {
	// Load returns the saved inventory for owner. The bool is false when
	// nothing has been saved yet.
	Load(ctx context.Context, owner string) (inventory.SaveData, bool, error)
	Save(ctx context.Context, owner string, data inventory.SaveData) error
	Delete(ctx context.Context, owner string) error
}

// MemoryStore keeps saves in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, owner string) (inventory.SaveData, bool, error) {
	m.mu.RLock()
	raw, ok := m.saves[owner]
	m.mu.RUnlock()
	if !ok {
		return inventory.SaveData{}, false, nil
	}
	data, err := inventory.UnmarshalSaveData(raw)
	if err != nil {
		return inventory.SaveData{}, false, err
	}
	return data, true, nil
}

// Save implements Store. The data is encoded so later mutation by the caller
// does not leak into the stored copy.
func (m *MemoryStore) Save(_ context.Context, owner string, data inventory.SaveData) error {
	raw, err := inventory.MarshalSaveData(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.saves[owner] = raw
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, owner string) error {
	m.mu.Lock()
	delete(m.saves, owner)
	m.mu.Unlock()
	return nil
}
