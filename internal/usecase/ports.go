package usecase

import (
	"context"

	domain "github.com/greenbowl/storefront-api/internal/entity"
)

// Store is the narrow key-value port every service keeps its state behind.
// The in-process map store is the default; a persistent backend can be
// substituted without touching business logic.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool, error)
	Put(ctx context.Context, key string, value T) error
	Delete(ctx context.Context, key string) (bool, error)
	All(ctx context.Context) ([]T, error)
}

// EventSink receives lifecycle events. Delivery is best-effort and must
// never fail the operation that triggered the event.
type EventSink interface {
	Publish(ctx context.Context, ev domain.WebhookEvent)
}
