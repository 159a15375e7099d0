package cart

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart/mirror"
)

// Manager hands out one Store per cart owner. Hydration goes through
// singleflight so concurrent requests for the same owner do not each
// hit the mirror.
type Manager struct {
	mirror mirror.Mirror
	log    *slog.Logger
	sfg    singleflight.Group

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(m mirror.Mirror, log *slog.Logger) *Manager {
	return &Manager{
		mirror: m,
		log:    log,
		stores: make(map[string]*Store),
	}
}

// Key maps a cart owner to its durable storage key. The anonymous
// owner uses the bare key.
func Key(owner string) string {
	if owner == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + owner
}

// Store returns the store for the owner, hydrating it on first use.
func (m *Manager) Store(ctx context.Context, owner string) *Store {
	key := Key(owner)

	m.mu.Lock()
	if s, ok := m.stores[key]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	v, _, _ := m.sfg.Do(key, func() (interface{}, error) {
		s := NewStore(ctx, m.mirror, key, m.log)
		m.mu.Lock()
		m.stores[key] = s
		m.mu.Unlock()
		return s, nil
	})

	return v.(*Store)
}

// FlushAll writes every live store back to the mirror. Teardown hook.
func (m *Manager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		if err := s.Flush(ctx); err != nil {
			m.log.Error("cart flush failed", slog.String("key", s.key), slog.Any("err", err))
		}
	}
}
