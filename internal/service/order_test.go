package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/repo"
)

type orderTestEnv struct {
	cart      *memCartRepo
	cust      *memCustomizationRepo
	prefs     *memPreferencesRepo
	backup    *memBackupRepo
	history   *memHistoryRepo
	fallback  *memFallbackRepo
	archive   *memArchiveRepo
	submitter *fakeSubmitter
	broker    *fakeBroker
	svc       *OrderService
}

func newOrderTestEnv() *orderTestEnv {
	env := &orderTestEnv{
		cart:      newMemCartRepo(),
		cust:      newMemCustomizationRepo(),
		prefs:     newMemPreferencesRepo(),
		backup:    newMemBackupRepo(),
		history:   newMemHistoryRepo(),
		fallback:  newMemFallbackRepo(),
		archive:   newMemArchiveRepo(),
		submitter: &fakeSubmitter{},
		broker:    &fakeBroker{},
	}

	env.svc = NewOrderService(
		env.cart,
		env.cust,
		env.prefs,
		env.backup,
		env.history,
		env.fallback,
		env.archive,
		NewPricingService(testCatalog()),
		env.submitter,
		env.broker,
		&fakeIDGen{},
		zap.NewNop().Sugar(),
	)

	return env
}

// seedCart puts a latte at tier2 with a caramel syrup plus a plain
// americano into the session. Expected total: 1200 + 200 + 700 = 2100.
func (env *orderTestEnv) seedCart(t *testing.T, sid string) {
	t.Helper()
	ctx := context.Background()

	lines := []domain.CartLine{
		{LineID: 100, ProductID: 1},
		{LineID: 101, ProductID: 2},
	}
	entries := map[int64]domain.CustomizationEntry{
		100: {
			SelectedVolume: domain.TierTwo,
			Toppings: []domain.ToppingRef{
				{ID: 11, Name: "Caramel syrup", Price: 200},
			},
		},
	}

	require.NoError(t, env.cart.SaveLines(ctx, sid, lines))
	require.NoError(t, env.cust.SaveEntries(ctx, sid, entries))
}

func TestPlaceOrder(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	sid := "session-1"
	env.seedCart(t, sid)

	meta := CustomerMeta{
		Name:        "Aruzhan",
		Phone:       "+7 700 000 00 00",
		Comment:     "no ice",
		Fulfillment: domain.FulfillmentTakeaway,
	}

	result, err := env.svc.PlaceOrder(ctx, sid, meta)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Fallback)

	order := result.Order
	assert.Equal(t, 2100, order.TotalAmount)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.FulfillmentTakeaway, order.Fulfillment)
	assert.Equal(t, domain.PaymentCard, order.PaymentMethod)
	assert.Equal(t, "Aruzhan", order.Customer.Name)
	assert.NotEmpty(t, order.OrderNumber)
	assert.NotEmpty(t, order.ReceiptNumber)

	// delivered to the endpoint once
	require.Len(t, env.submitter.delivered, 1)
	assert.Equal(t, order.OrderNumber, env.submitter.delivered[0].OrderNumber)

	// cart and customizations cleared
	lines, err := env.cart.Lines(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, lines)
	entries, err := env.cust.Entries(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// history gained the order, newest first
	history, err := env.svc.History(ctx, sid)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.OrderNumber, history[0].Order.OrderNumber)

	// backup holds the pre-clear snapshot
	backup, err := env.backup.Get(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, backup)
	assert.Len(t, backup.Lines, 2)
	assert.Equal(t, domain.TierTwo, backup.Entries[100].SelectedVolume)

	// one order.created event published
	require.Len(t, env.broker.published, 1)
	var event domain.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(env.broker.published[0], &event))
	assert.Equal(t, domain.EventOrderCreated, event.EventType)
	assert.Equal(t, order.OrderNumber, event.Order.OrderNumber)

	// sticky preferences keep contact details, drop the comment
	prefs, err := env.prefs.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Aruzhan", prefs.Name)
	assert.Equal(t, "+7 700 000 00 00", prefs.Phone)
	assert.Empty(t, prefs.Comment)
	assert.Empty(t, prefs.Fulfillment)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()

	_, err := env.svc.PlaceOrder(ctx, "session-1", CustomerMeta{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// nothing mutated
	assert.Empty(t, env.submitter.delivered)
	assert.Empty(t, env.broker.published)
	backup, err := env.backup.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, backup)
}

func TestPlaceOrderFallback(t *testing.T) {
	env := newOrderTestEnv()
	env.submitter.failing = true
	ctx := context.Background()
	sid := "session-1"
	env.seedCart(t, sid)

	result, err := env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
	require.NoError(t, err)
	assert.True(t, result.Fallback)

	queued, err := env.fallback.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), queued)

	// the placement still committed: cart cleared, history written
	lines, err := env.cart.Lines(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, lines)
	history, err := env.svc.History(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPlaceOrderInFlightGuard(t *testing.T) {
	env := newOrderTestEnv()
	env.submitter.block = make(chan struct{})
	ctx := context.Background()
	sid := "session-1"
	env.seedCart(t, sid)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
		assert.NoError(t, err)
	}()

	// wait for the first placement to reach the submitter
	require.Eventually(t, func() bool {
		env.svc.mu.Lock()
		defer env.svc.mu.Unlock()
		_, busy := env.svc.inFlight[sid]
		return busy
	}, time.Second, 5*time.Millisecond)

	_, err := env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
	assert.ErrorIs(t, err, ErrOrderInFlight)

	close(env.submitter.block)
	wg.Wait()

	// the guard is released after the first placement finishes
	env.seedCart(t, sid)
	env.submitter.block = nil
	_, err = env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
	assert.NoError(t, err)
}

func TestOrderHistoryCap(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	sid := "session-1"

	for i := 0; i < repo.HistoryLimit+5; i++ {
		env.seedCart(t, sid)
		_, err := env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
		require.NoError(t, err)
	}

	history, err := env.svc.History(ctx, sid)
	require.NoError(t, err)
	require.Len(t, history, repo.HistoryLimit)

	// newest first: the last placed order leads the list
	last := env.submitter.delivered[len(env.submitter.delivered)-1]
	assert.Equal(t, last.OrderNumber, history[0].Order.OrderNumber)
}

func TestRestoreLastOrder(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	sid := "session-1"

	t.Run("nothing to restore", func(t *testing.T) {
		err := env.svc.RestoreLastOrder(ctx, sid)
		assert.ErrorIs(t, err, ErrNothingToRestore)
	})

	env.seedCart(t, sid)
	_, err := env.svc.PlaceOrder(ctx, sid, CustomerMeta{})
	require.NoError(t, err)

	require.NoError(t, env.svc.RestoreLastOrder(ctx, sid))

	lines, err := env.cart.Lines(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	entries, err := env.cust.Entries(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.TierTwo, entries[100].SelectedVolume)

	// the backup survives a restore, so restoring again works too
	require.NoError(t, env.cart.Clear(ctx, sid))
	require.NoError(t, env.svc.RestoreLastOrder(ctx, sid))
	lines, err = env.cart.Lines(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestReceipt(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	sid := "session-1"
	env.seedCart(t, sid)

	lines, total, err := env.svc.Receipt(ctx, sid)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2100, total)
	assert.Equal(t, "Latte", lines[0].ProductName)
	assert.Equal(t, 1400, lines[0].LineTotal)
	assert.Equal(t, 700, lines[1].LineTotal)
}

func TestProcessOrderCreated(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()

	event := domain.OrderCreatedEvent{
		EventType: domain.EventOrderCreated,
		Order:     domain.Order{ID: 7, OrderNumber: "ORD-00000007", TotalAmount: 900},
		Timestamp: time.Now(),
	}

	require.NoError(t, env.svc.ProcessOrderCreated(ctx, event))

	recent, err := env.svc.RecentOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "ORD-00000007", recent[0].Order.OrderNumber)
}
