package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

type CustomizationRepository interface {
	Entries(ctx context.Context, sessionID string) (map[int64]domain.CustomizationEntry, error)
	SaveEntries(ctx context.Context, sessionID string, entries map[int64]domain.CustomizationEntry) error
	Clear(ctx context.Context, sessionID string) error
}
