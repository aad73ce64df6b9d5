package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

func newTestCustomizationService() (*CustomizationService, *memCustomizationRepo) {
	custRepo := newMemCustomizationRepo()
	svc := NewCustomizationService(custRepo, testCatalog(), zap.NewNop().Sugar())
	return svc, custRepo
}

func TestSetVolume(t *testing.T) {
	svc, _ := newTestCustomizationService()
	ctx := context.Background()
	sid := "session-1"

	require.NoError(t, svc.SetVolume(ctx, sid, 100, domain.TierTwo))

	entries, err := svc.Entries(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.TierTwo, entries[100].SelectedVolume)

	// switching the volume keeps the toppings
	_, err = svc.AddTopping(ctx, sid, 100, 11)
	require.NoError(t, err)
	require.NoError(t, svc.SetVolume(ctx, sid, 100, domain.TierThree))

	entries, err = svc.Entries(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.TierThree, entries[100].SelectedVolume)
	assert.Len(t, entries[100].Toppings, 1)
}

func TestAddTopping(t *testing.T) {
	svc, _ := newTestCustomizationService()
	ctx := context.Background()
	sid := "session-1"

	ref, err := svc.AddTopping(ctx, sid, 100, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, ref.ID)
	assert.Equal(t, "Caramel syrup", ref.Name)
	assert.Equal(t, 200, ref.Price)

	t.Run("duplicate is rejected and the line is untouched", func(t *testing.T) {
		_, err := svc.AddTopping(ctx, sid, 100, 11)
		assert.ErrorIs(t, err, ErrDuplicateTopping)

		entries, err := svc.Entries(ctx, sid)
		require.NoError(t, err)
		assert.Len(t, entries[100].Toppings, 1)
	})

	t.Run("unknown topping", func(t *testing.T) {
		_, err := svc.AddTopping(ctx, sid, 100, 999)
		assert.ErrorIs(t, err, ErrToppingNotFound)
	})

	t.Run("same topping on another line is fine", func(t *testing.T) {
		_, err := svc.AddTopping(ctx, sid, 200, 11)
		assert.NoError(t, err)
	})
}

func TestRemoveTopping(t *testing.T) {
	svc, _ := newTestCustomizationService()
	ctx := context.Background()
	sid := "session-1"

	_, err := svc.AddTopping(ctx, sid, 100, 11)
	require.NoError(t, err)
	_, err = svc.AddTopping(ctx, sid, 100, 12)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTopping(ctx, sid, 100, 11))

	entries, err := svc.Entries(ctx, sid)
	require.NoError(t, err)
	require.Len(t, entries[100].Toppings, 1)
	assert.Equal(t, 12, entries[100].Toppings[0].ID)

	// removing an absent topping or from an absent line is a no-op
	require.NoError(t, svc.RemoveTopping(ctx, sid, 100, 11))
	require.NoError(t, svc.RemoveTopping(ctx, sid, 555, 11))
}

func TestToppingSnapshotSurvivesReprice(t *testing.T) {
	catalog := testCatalog()
	custRepo := newMemCustomizationRepo()
	svc := NewCustomizationService(custRepo, catalog, zap.NewNop().Sugar())
	ctx := context.Background()
	sid := "session-1"

	_, err := svc.AddTopping(ctx, sid, 100, 11)
	require.NoError(t, err)

	// reprice in the catalog after the selection was made
	repriced := catalog.toppings[11]
	repriced.Price = 500
	catalog.toppings[11] = repriced

	entries, err := svc.Entries(ctx, sid)
	require.NoError(t, err)
	require.Len(t, entries[100].Toppings, 1)
	assert.Equal(t, 200, entries[100].Toppings[0].Price)
}
