package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// CartRepository persists the ordered cart line sequence per session.
// Reads always hit the store so mutations from another browser context are
// observed on the next call.
type CartRepository interface {
	Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	SaveLines(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Clear(ctx context.Context, sessionID string) error
	// Watch delivers a signal whenever the session's cart or customization
	// state changes, until ctx is done.
	Watch(ctx context.Context, sessionID string) (<-chan struct{}, error)
}
