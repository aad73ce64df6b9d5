package service

import (
	"context"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/ids"
	"github.com/25260173/crema-cafe-demo/internal/repo"
	"go.uber.org/zap"
)

type CartService struct {
	cartRepo repo.CartRepository
	catalog  Catalog
	ids      ids.Generator
	logger   *zap.SugaredLogger
}

func NewCartService(
	cartRepo repo.CartRepository,
	catalog Catalog,
	ids ids.Generator,
	logger *zap.SugaredLogger,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
		ids:      ids,
		logger:   logger,
	}
}

// Add appends a new line for the product and persists immediately. The
// product does not have to exist in the catalog; an unknown reference is
// still carried and priced at zero later.
func (s *CartService) Add(ctx context.Context, sessionID string, productID int) (domain.CartLine, error) {
	lines, err := s.cartRepo.Lines(ctx, sessionID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("failed to read cart: %w", err)
	}

	line := domain.CartLine{
		LineID:    s.ids.NextID(),
		ProductID: productID,
	}
	lines = append(lines, line)

	if err := s.cartRepo.SaveLines(ctx, sessionID, lines); err != nil {
		return domain.CartLine{}, fmt.Errorf("failed to save cart: %w", err)
	}

	if product, ok := s.catalog.FindProduct(productID); ok {
		s.logger.Infow("product added to cart", "session_id", sessionID, "line_id", line.LineID, "product", product.Name)
	} else {
		s.logger.Infow("unknown product added to cart", "session_id", sessionID, "line_id", line.LineID, "product_id", productID)
	}

	return line, nil
}

// Remove filters the line out by identity. Removing an absent line is not
// an error; relative order of the remaining lines is untouched.
func (s *CartService) Remove(ctx context.Context, sessionID string, lineID int64) error {
	lines, err := s.cartRepo.Lines(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read cart: %w", err)
	}

	filtered := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.LineID != lineID {
			filtered = append(filtered, line)
		}
	}

	if err := s.cartRepo.SaveLines(ctx, sessionID, filtered); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// Lines reads the cart fresh from the store on every call.
func (s *CartService) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	lines, err := s.cartRepo.Lines(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return lines, nil
}

// Watch exposes the session's change-notification channel.
func (s *CartService) Watch(ctx context.Context, sessionID string) (<-chan struct{}, error) {
	return s.cartRepo.Watch(ctx, sessionID)
}
