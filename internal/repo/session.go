package repo

import (
	"context"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

type PreferencesRepository interface {
	Get(ctx context.Context, sessionID string) (domain.CustomerPreferences, error)
	Save(ctx context.Context, sessionID string, prefs domain.CustomerPreferences) error
}

// BackupRepository holds the single last-order backup slot per session.
// Get returns nil when no backup exists.
type BackupRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.OrderBackup, error)
	Save(ctx context.Context, sessionID string, backup domain.OrderBackup) error
}
