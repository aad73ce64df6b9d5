package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// OrderArchiveRepository is the durable order archive fed by the
// order-events worker.
type OrderArchiveRepository interface {
	Create(ctx context.Context, order *domain.ArchivedOrder) error
	ListRecent(ctx context.Context, limit int64) ([]domain.ArchivedOrder, error)
}
