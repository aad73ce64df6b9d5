package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/redis/go-redis/v9"
)

type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(s *Storage) *CartRepository {
	return &CartRepository{
		client: s.Client(),
	}
}

func (r *CartRepository) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return lines, nil
}

func (r *CartRepository) SaveLines(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return r.notify(ctx, sessionID)
}

func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return r.notify(ctx, sessionID)
}

// notify publishes a change event on the cart key's channel. Other
// contexts watching the session pick it up and re-resolve pricing.
func (r *CartRepository) notify(ctx context.Context, sessionID string) error {
	if err := r.client.Publish(ctx, cartKey(sessionID), "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish cart change: %w", err)
	}

	return nil
}

func (r *CartRepository) Watch(ctx context.Context, sessionID string) (<-chan struct{}, error) {
	sub := r.client.Subscribe(ctx, cartKey(sessionID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to cart changes: %w", err)
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.Channel():
				if !ok {
					return
				}
				// coalesce bursts: a pending signal is enough
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}
