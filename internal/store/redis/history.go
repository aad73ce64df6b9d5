package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/repo"
	"github.com/redis/go-redis/v9"
)

type OrderHistoryRepository struct {
	client *redis.Client
}

func NewOrderHistoryRepository(s *Storage) *OrderHistoryRepository {
	return &OrderHistoryRepository{
		client: s.Client(),
	}
}

func (r *OrderHistoryRepository) Push(ctx context.Context, sessionID string, order domain.ArchivedOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode archived order: %w", err)
	}

	key := historyKey(sessionID)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, repo.HistoryLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push order to history: %w", err)
	}

	return nil
}

func (r *OrderHistoryRepository) List(ctx context.Context, sessionID string) ([]domain.ArchivedOrder, error) {
	items, err := r.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	out := make([]domain.ArchivedOrder, 0, len(items))
	for _, item := range items {
		var order domain.ArchivedOrder
		if err := json.Unmarshal([]byte(item), &order); err != nil {
			return nil, fmt.Errorf("failed to decode archived order: %w", err)
		}
		out = append(out, order)
	}

	return out, nil
}
