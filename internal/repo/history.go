package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// HistoryLimit caps the per-session order history; the oldest entry is
// evicted beyond it.
const HistoryLimit = 50

// OrderHistoryRepository keeps the capped, most-recent-first order history
// per session.
type OrderHistoryRepository interface {
	Push(ctx context.Context, sessionID string, order domain.ArchivedOrder) error
	List(ctx context.Context, sessionID string) ([]domain.ArchivedOrder, error)
}
