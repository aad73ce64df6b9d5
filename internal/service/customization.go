package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrDuplicateTopping = errors.New("topping already added to this line")
	ErrToppingNotFound  = errors.New("topping not found")
)

type CustomizationService struct {
	custRepo repo.CustomizationRepository
	catalog  Catalog
	logger   *zap.SugaredLogger
}

func NewCustomizationService(
	custRepo repo.CustomizationRepository,
	catalog Catalog,
	logger *zap.SugaredLogger,
) *CustomizationService {
	return &CustomizationService{
		custRepo: custRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

// SetVolume records the tier choice for a line, creating the entry when
// absent.
func (s *CustomizationService) SetVolume(ctx context.Context, sessionID string, lineID int64, key domain.TierKey) error {
	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read customizations: %w", err)
	}

	entry := entries[lineID]
	entry.SelectedVolume = key
	entries[lineID] = entry

	if err := s.custRepo.SaveEntries(ctx, sessionID, entries); err != nil {
		return fmt.Errorf("failed to save customizations: %w", err)
	}

	return nil
}

// AddTopping snapshots the topping's current catalog price onto the line.
// The snapshot is intentional: repricing the catalog later never changes
// an already-made selection. Adding the same topping twice fails with
// ErrDuplicateTopping and leaves the line untouched.
func (s *CustomizationService) AddTopping(ctx context.Context, sessionID string, lineID int64, toppingID int) (domain.ToppingRef, error) {
	topping, ok := s.catalog.FindTopping(toppingID)
	if !ok {
		return domain.ToppingRef{}, ErrToppingNotFound
	}

	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return domain.ToppingRef{}, fmt.Errorf("failed to read customizations: %w", err)
	}

	entry := entries[lineID]
	if entry.HasTopping(toppingID) {
		return domain.ToppingRef{}, ErrDuplicateTopping
	}

	ref := topping.Ref()
	entry.Toppings = append(entry.Toppings, ref)
	entries[lineID] = entry

	if err := s.custRepo.SaveEntries(ctx, sessionID, entries); err != nil {
		return domain.ToppingRef{}, fmt.Errorf("failed to save customizations: %w", err)
	}

	s.logger.Infow("topping added", "session_id", sessionID, "line_id", lineID, "topping", topping.Name)

	return ref, nil
}

// RemoveTopping filters the topping out by ID. Removing an absent topping
// is a no-op, not an error.
func (s *CustomizationService) RemoveTopping(ctx context.Context, sessionID string, lineID int64, toppingID int) error {
	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read customizations: %w", err)
	}

	entry, ok := entries[lineID]
	if !ok {
		return nil
	}

	filtered := make([]domain.ToppingRef, 0, len(entry.Toppings))
	for _, t := range entry.Toppings {
		if t.ID != toppingID {
			filtered = append(filtered, t)
		}
	}
	entry.Toppings = filtered
	entries[lineID] = entry

	if err := s.custRepo.SaveEntries(ctx, sessionID, entries); err != nil {
		return fmt.Errorf("failed to save customizations: %w", err)
	}

	return nil
}

func (s *CustomizationService) Entries(ctx context.Context, sessionID string) (map[int64]domain.CustomizationEntry, error) {
	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read customizations: %w", err)
	}

	return entries, nil
}

func (s *CustomizationService) Clear(ctx context.Context, sessionID string) error {
	if err := s.custRepo.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear customizations: %w", err)
	}

	return nil
}
