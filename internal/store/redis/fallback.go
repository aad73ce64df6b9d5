package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/redis/go-redis/v9"
)

// FallbackOrderRepository is a single process-wide list: orders parked here
// when the remote endpoint is down, drained FIFO by the fallback worker.
type FallbackOrderRepository struct {
	client *redis.Client
}

func NewFallbackOrderRepository(s *Storage) *FallbackOrderRepository {
	return &FallbackOrderRepository{
		client: s.Client(),
	}
}

func (r *FallbackOrderRepository) Enqueue(ctx context.Context, order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode fallback order: %w", err)
	}

	if err := r.client.RPush(ctx, fallbackKey(), data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue fallback order: %w", err)
	}

	return nil
}

func (r *FallbackOrderRepository) Dequeue(ctx context.Context) (*domain.Order, error) {
	data, err := r.client.LPop(ctx, fallbackKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue fallback order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode fallback order: %w", err)
	}

	return &order, nil
}

func (r *FallbackOrderRepository) Requeue(ctx context.Context, order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode fallback order: %w", err)
	}

	if err := r.client.LPush(ctx, fallbackKey(), data).Err(); err != nil {
		return fmt.Errorf("failed to requeue fallback order: %w", err)
	}

	return nil
}

func (r *FallbackOrderRepository) Len(ctx context.Context) (int64, error) {
	n, err := r.client.LLen(ctx, fallbackKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read fallback queue length: %w", err)
	}

	return n, nil
}
