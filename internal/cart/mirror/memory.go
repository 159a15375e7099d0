package mirror

import (
	"context"
	"sync"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/domain"
)

// MemoryMirror is an in-process Mirror used in tests and local runs
// without Redis.
type MemoryMirror struct {
	mu    sync.RWMutex
	carts map[string][]domain.LineItem
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{carts: make(map[string][]domain.LineItem)}
}

func (m *MemoryMirror) Get(_ context.Context, key string) ([]domain.LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryMirror) Set(_ context.Context, key string, items []domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]domain.LineItem, len(items))
	copy(stored, items)
	m.carts[key] = stored
	return nil
}

func (m *MemoryMirror) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, key)
	return nil
}
