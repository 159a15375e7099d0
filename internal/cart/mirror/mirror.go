package mirror

import (
	"context"
	"errors"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/domain"
)

// Mirror is the durable storage behind a cart store. Writes overwrite
// the whole serialized sequence; there is no merge.
type Mirror interface {
	Get(ctx context.Context, key string) ([]domain.LineItem, error)
	Set(ctx context.Context, key string, items []domain.LineItem) error
	Delete(ctx context.Context, key string) error
}

var (
	// ErrNotFound signals that no cart is stored under the key.
	ErrNotFound = errors.New("cart not found")

	// ErrCorrupt signals that the stored value could not be decoded.
	// Stores recover by discarding the entry; the sentinel stays
	// visible for tests and observability.
	ErrCorrupt = errors.New("corrupt cart data")
)
