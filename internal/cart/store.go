package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart/mirror"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/domain"
)

// DefaultKey is the durable storage key used when no owner is known.
const DefaultKey = "cart"

const persistTimeout = time.Second

// Op names a cart mutation in subscriber events.
type Op string

const (
	OpAdded   Op = "added"
	OpUpdated Op = "updated"
	OpRemoved Op = "removed"
	OpCleared Op = "cleared"
)

// Event describes a completed mutation. OpAdded events back the
// storefront's add-to-cart notification.
type Event struct {
	Op   Op
	Item *domain.LineItem
}

// Store is the authoritative in-memory cart for one owner. It hydrates
// once from the mirror at construction and overwrites the mirror after
// every mutation. Persistence failures are logged, never surfaced.
type Store struct {
	key    string
	mirror mirror.Mirror
	log    *slog.Logger

	mu   sync.Mutex
	cart domain.Cart
	subs map[int]func(Event)
	next int
}

// NewStore builds a store hydrated from the mirror. A missing entry
// means an empty cart; a corrupt entry is deleted and treated the
// same, with a warning left in the log.
func NewStore(ctx context.Context, m mirror.Mirror, key string, log *slog.Logger) *Store {
	s := &Store{
		key:    key,
		mirror: m,
		log:    log,
		subs:   make(map[int]func(Event)),
	}

	items, err := m.Get(ctx, key)
	switch {
	case err == nil:
		s.cart.Items = items
	case errors.Is(err, mirror.ErrNotFound):
	case errors.Is(err, mirror.ErrCorrupt):
		log.Warn("discarding corrupt cart", slog.String("key", key), slog.Any("err", err))
		if delErr := m.Delete(ctx, key); delErr != nil {
			log.Error("delete corrupt cart failed", slog.String("key", key), slog.Any("err", delErr))
		}
	default:
		log.Error("cart hydrate failed", slog.String("key", key), slog.Any("err", err))
	}

	return s
}

// Subscribe registers fn for mutation events and returns the
// unsubscribe func. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Add merges or appends a line item for the product variant and
// persists the new state.
func (s *Store) Add(ctx context.Context, p domain.ProductSummary, color, size string, quantity int) *domain.LineItem {
	s.mu.Lock()
	item := s.cart.Add(p, color, size, quantity)
	s.persistLocked(ctx)
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	if item != nil {
		notify(subs, Event{Op: OpAdded, Item: item})
	}
	return item
}

// Remove drops the line item with the given composite key.
func (s *Store) Remove(ctx context.Context, itemID string) {
	s.mu.Lock()
	removed := s.cart.Remove(itemID)
	s.persistLocked(ctx)
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	if removed {
		notify(subs, Event{Op: OpRemoved})
	}
}

// UpdateQuantity sets the quantity of the matching item; zero or
// below removes it.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	s.mu.Lock()
	changed := s.cart.UpdateQuantity(itemID, quantity)
	s.persistLocked(ctx)
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	if changed {
		op := OpUpdated
		if quantity <= 0 {
			op = OpRemoved
		}
		notify(subs, Event{Op: op})
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	s.persistLocked(ctx)
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	notify(subs, Event{Op: OpCleared})
}

// Items returns a copy of the current line-item sequence.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItem, len(s.cart.Items))
	copy(out, s.cart.Items)
	return out
}

// Totals computes the derived amounts for the current state.
func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// Flush writes the current state to the mirror. Used at teardown;
// unlike the per-mutation writes it reports the error.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Set(ctx, s.key, s.cart.Items)
}

// persistLocked mirrors the whole sequence, last writer wins. The
// write is bounded so a slow mirror cannot stall a mutation.
func (s *Store) persistLocked(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.mirror.Set(ctx, s.key, s.cart.Items); err != nil {
		s.log.Error("cart persist failed", slog.String("key", s.key), slog.Any("err", err))
	}
}

func (s *Store) snapshotSubsLocked() []func(Event) {
	out := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
