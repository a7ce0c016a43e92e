package cache

import (
	"context"
	"sync"

	"github.com/bianca-ap01/coin-swap/pkg/provider"
)

// MemorySelectionStore keeps the active rate adapter key in process memory.
type MemorySelectionStore struct {
	mu  sync.RWMutex
	key string
}

// NewMemorySelectionStore creates an empty in-memory store.
func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{}
}

// GetSelected implements provider.SelectionStore.
func (m *MemorySelectionStore) GetSelected(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, nil
}

// SetSelected implements provider.SelectionStore.
func (m *MemorySelectionStore) SetSelected(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = key
	return nil
}

var _ provider.SelectionStore = (*MemorySelectionStore)(nil)
