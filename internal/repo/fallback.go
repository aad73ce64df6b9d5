package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// FallbackOrderRepository queues orders accepted locally while the remote
// persistence endpoint is unreachable. Dequeue returns nil when the queue
// is empty; Requeue puts an order back at the front after a failed retry.
type FallbackOrderRepository interface {
	Enqueue(ctx context.Context, order domain.Order) error
	Dequeue(ctx context.Context) (*domain.Order, error)
	Requeue(ctx context.Context, order domain.Order) error
	Len(ctx context.Context) (int64, error)
}
