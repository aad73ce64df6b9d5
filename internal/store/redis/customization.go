package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/redis/go-redis/v9"
)

type CustomizationRepository struct {
	client *redis.Client
}

func NewCustomizationRepository(s *Storage) *CustomizationRepository {
	return &CustomizationRepository{
		client: s.Client(),
	}
}

func (r *CustomizationRepository) Entries(ctx context.Context, sessionID string) (map[int64]domain.CustomizationEntry, error) {
	data, err := r.client.Get(ctx, customizationKey(sessionID)).Bytes()
	if err == redis.Nil {
		return map[int64]domain.CustomizationEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customizations: %w", err)
	}

	var entries map[int64]domain.CustomizationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode customizations: %w", err)
	}

	return entries, nil
}

func (r *CustomizationRepository) SaveEntries(ctx context.Context, sessionID string, entries map[int64]domain.CustomizationEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode customizations: %w", err)
	}

	if err := r.client.Set(ctx, customizationKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save customizations: %w", err)
	}

	// customization changes reprice the receipt too, so they signal on the
	// same channel as cart mutations
	if err := r.client.Publish(ctx, cartKey(sessionID), "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish customization change: %w", err)
	}

	return nil
}

func (r *CustomizationRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, customizationKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear customizations: %w", err)
	}

	return nil
}
