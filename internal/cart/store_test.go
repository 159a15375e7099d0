package cart

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart/mirror"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func shirt() domain.ProductSummary {
	return domain.ProductSummary{ID: "p1", Name: "Linen Shirt", Price: 5000, Category: "shirts"}
}

func TestStore_AddPersistsToMirror(t *testing.T) {
	ctx := context.Background()
	m := mirror.NewMemoryMirror()
	s := NewStore(ctx, m, DefaultKey, testLogger())

	s.Add(ctx, shirt(), "red", "M", 2)

	stored, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "p1-red-M", stored[0].ID)
	assert.Equal(t, 2, stored[0].Quantity)
}

func TestStore_HydratesFromMirror(t *testing.T) {
	ctx := context.Background()
	m := mirror.NewMemoryMirror()
	items := []domain.LineItem{
		{ID: "p1-red-M", ProductID: "p1", Price: 5000, Quantity: 2},
		{ID: "p2--", ProductID: "p2", Price: 1000, Quantity: 1},
	}
	require.NoError(t, m.Set(ctx, DefaultKey, items))

	s := NewStore(ctx, m, DefaultKey, testLogger())

	got := s.Items()
	require.Len(t, got, 2)
	assert.Equal(t, items, got)
}

func TestStore_EmptyMirrorMeansEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, mirror.NewMemoryMirror(), DefaultKey, testLogger())
	assert.Empty(t, s.Items())
}

func TestStore_MutationsOverwriteWholesale(t *testing.T) {
	ctx := context.Background()
	m := mirror.NewMemoryMirror()
	s := NewStore(ctx, m, DefaultKey, testLogger())

	s.Add(ctx, shirt(), "red", "M", 2)
	s.UpdateQuantity(ctx, "p1-red-M", 5)
	s.Remove(ctx, "p1-red-M")

	stored, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStore_ClearPersistsEmptySequence(t *testing.T) {
	ctx := context.Background()
	m := mirror.NewMemoryMirror()
	s := NewStore(ctx, m, DefaultKey, testLogger())

	s.Add(ctx, shirt(), "red", "M", 2)
	s.Clear(ctx)
	s.Clear(ctx)

	stored, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, s.Items())
}

func TestStore_SubscribeReceivesAddEvent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, mirror.NewMemoryMirror(), DefaultKey, testLogger())

	var events []Event
	unsub := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Add(ctx, shirt(), "red", "M", 2)

	require.Len(t, events, 1)
	assert.Equal(t, OpAdded, events[0].Op)
	require.NotNil(t, events[0].Item)
	assert.Equal(t, "p1-red-M", events[0].Item.ID)

	unsub()
	s.Add(ctx, shirt(), "red", "M", 1)
	assert.Len(t, events, 1, "no events after unsubscribe")
}

func TestStore_SubscribeEventOps(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, mirror.NewMemoryMirror(), DefaultKey, testLogger())

	var ops []Op
	s.Subscribe(func(ev Event) { ops = append(ops, ev.Op) })

	s.Add(ctx, shirt(), "red", "M", 2)
	s.UpdateQuantity(ctx, "p1-red-M", 3)
	s.UpdateQuantity(ctx, "p1-red-M", 0)
	s.Clear(ctx)

	assert.Equal(t, []Op{OpAdded, OpUpdated, OpRemoved, OpCleared}, ops)
}

func TestStore_PersistFailureIsSilent(t *testing.T) {
	ctx := context.Background()
	m := &failingMirror{}
	s := NewStore(ctx, m, DefaultKey, testLogger())

	item := s.Add(ctx, shirt(), "red", "M", 2)

	require.NotNil(t, item)
	require.Len(t, s.Items(), 1, "in-memory state advances even when the mirror write fails")
}

func TestStore_Totals(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, mirror.NewMemoryMirror(), DefaultKey, testLogger())

	s.Add(ctx, shirt(), "red", "M", 2)

	tot := s.Totals()
	assert.Equal(t, int64(10000), tot.Subtotal)
	assert.Equal(t, int64(300), tot.Tax)
}

type failingMirror struct{}

func (f *failingMirror) Get(context.Context, string) ([]domain.LineItem, error) {
	return nil, mirror.ErrNotFound
}

func (f *failingMirror) Set(context.Context, string, []domain.LineItem) error {
	return assert.AnError
}

func (f *failingMirror) Delete(context.Context, string) error {
	return nil
}
