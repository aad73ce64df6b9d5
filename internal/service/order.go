package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/ids"
	"github.com/25260173/crema-cafe-demo/internal/queue"
	"github.com/25260173/crema-cafe-demo/internal/repo"
	"github.com/25260173/crema-cafe-demo/internal/submit"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOrderInFlight    = errors.New("an order is already being placed for this session")
	ErrNothingToRestore = errors.New("no order backup to restore")
)

// CustomerMeta carries the order form fields. All free text is optional;
// fulfillment and payment fall back to dine-in/card.
type CustomerMeta struct {
	Name          string
	Phone         string
	Email         string
	Comment       string
	Fulfillment   domain.FulfillmentType
	PaymentMethod domain.PaymentMethod
}

// PlaceOrderResult reports a completed placement. Fallback is set when the
// remote endpoint was unreachable and the order was queued locally; the
// user-visible outcome is success either way.
type PlaceOrderResult struct {
	Order    domain.Order `json:"order"`
	Fallback bool         `json:"fallback"`
}

type OrderService struct {
	cartRepo     repo.CartRepository
	custRepo     repo.CustomizationRepository
	prefsRepo    repo.PreferencesRepository
	backupRepo   repo.BackupRepository
	historyRepo  repo.OrderHistoryRepository
	fallbackRepo repo.FallbackOrderRepository
	archiveRepo  repo.OrderArchiveRepository
	pricing      *PricingService
	submitter    submit.Submitter
	broker       queue.Broker
	ids          ids.Generator
	logger       *zap.SugaredLogger
	now          func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewOrderService(
	cartRepo repo.CartRepository,
	custRepo repo.CustomizationRepository,
	prefsRepo repo.PreferencesRepository,
	backupRepo repo.BackupRepository,
	historyRepo repo.OrderHistoryRepository,
	fallbackRepo repo.FallbackOrderRepository,
	archiveRepo repo.OrderArchiveRepository,
	pricing *PricingService,
	submitter submit.Submitter,
	broker queue.Broker,
	ids ids.Generator,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		cartRepo:     cartRepo,
		custRepo:     custRepo,
		prefsRepo:    prefsRepo,
		backupRepo:   backupRepo,
		historyRepo:  historyRepo,
		fallbackRepo: fallbackRepo,
		archiveRepo:  archiveRepo,
		pricing:      pricing,
		submitter:    submitter,
		broker:       broker,
		ids:          ids,
		logger:       logger,
		now:          time.Now,
		inFlight:     make(map[string]struct{}),
	}
}

// beginPlacing is the per-session single-flight guard: a second PlaceOrder
// for the same session while one is running is rejected instead of racing.
func (s *OrderService) beginPlacing(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}

	return true
}

func (s *OrderService) endPlacing(sessionID string) {
	s.mu.Lock()
	delete(s.inFlight, sessionID)
	s.mu.Unlock()
}

// PlaceOrder composes and commits an order: resolve prices, submit to the
// remote endpoint (falling back to the local queue when it is down),
// archive to history, snapshot a one-level-undo backup, then clear the
// cart and customizations. An empty cart fails before anything mutates.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, meta CustomerMeta) (*PlaceOrderResult, error) {
	if !s.beginPlacing(sessionID) {
		return nil, ErrOrderInFlight
	}
	defer s.endPlacing(sessionID)

	lines, err := s.cartRepo.Lines(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read customizations: %w", err)
	}

	priced := s.pricing.Resolve(lines, entries)

	now := s.now()
	order := s.composeOrder(priced, meta, now)

	fallback := false
	if err := s.submitter.Submit(ctx, order); err != nil {
		s.logger.Warnw("order endpoint unavailable, queuing order locally",
			"order_number", order.OrderNumber, "error", err)
		if qerr := s.fallbackRepo.Enqueue(ctx, order); qerr != nil {
			return nil, fmt.Errorf("failed to queue fallback order: %w", qerr)
		}
		fallback = true
	}

	// from here on the order is committed; the remaining steps are
	// best-effort and must not fail the placement
	archived := domain.ArchivedOrder{Order: order, ArchivedAt: now}
	if err := s.historyRepo.Push(ctx, sessionID, archived); err != nil {
		s.logger.Errorw("failed to push order to history", "order_number", order.OrderNumber, "error", err)
	}

	backup := domain.OrderBackup{Lines: lines, Entries: entries, Timestamp: now}
	if err := s.backupRepo.Save(ctx, sessionID, backup); err != nil {
		s.logger.Errorw("failed to save last order backup", "session_id", sessionID, "error", err)
	}

	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		s.logger.Errorw("failed to clear cart after order", "session_id", sessionID, "error", err)
	}
	if err := s.custRepo.Clear(ctx, sessionID); err != nil {
		s.logger.Errorw("failed to clear customizations after order", "session_id", sessionID, "error", err)
	}

	s.resetPreferences(ctx, sessionID, meta)
	s.publishOrderCreated(ctx, order, now)

	s.logger.Infow("order placed",
		"order_number", order.OrderNumber,
		"total_amount", order.TotalAmount,
		"lines", len(order.Lines),
		"fallback", fallback,
	)

	return &PlaceOrderResult{Order: order, Fallback: fallback}, nil
}

func (s *OrderService) composeOrder(priced []domain.PricedLine, meta CustomerMeta, now time.Time) domain.Order {
	fulfillment := meta.Fulfillment
	if fulfillment == "" {
		fulfillment = domain.FulfillmentDineIn
	}
	payment := meta.PaymentMethod
	if payment == "" {
		payment = domain.PaymentCard
	}

	orderLines := make([]domain.OrderLine, 0, len(priced))
	for _, line := range priced {
		orderLines = append(orderLines, domain.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			BasePrice:   line.BasePrice,
			LineTotal:   line.LineTotal,
			VolumeLabel: line.VolumeLabel,
			Toppings:    line.Toppings,
		})
	}

	id := s.ids.NextID()

	return domain.Order{
		ID:          id,
		OrderNumber: s.ids.OrderNumber(id),
		CreatedAt:   now,
		Status:      domain.OrderStatusPending,
		Customer: domain.CustomerInfo{
			Name:    meta.Name,
			Phone:   meta.Phone,
			Email:   meta.Email,
			Comment: meta.Comment,
		},
		Fulfillment:   fulfillment,
		PaymentMethod: payment,
		Lines:         orderLines,
		TotalAmount:   Total(priced),
		ReceiptNumber: s.ids.ReceiptNumber(),
	}
}

// resetPreferences keeps name/phone/email as sticky defaults for the next
// order and drops the comment and per-order choices.
func (s *OrderService) resetPreferences(ctx context.Context, sessionID string, meta CustomerMeta) {
	prefs, err := s.prefsRepo.Get(ctx, sessionID)
	if err != nil {
		s.logger.Errorw("failed to read preferences", "session_id", sessionID, "error", err)
		prefs = domain.CustomerPreferences{}
	}

	if meta.Name != "" {
		prefs.Name = meta.Name
	}
	if meta.Phone != "" {
		prefs.Phone = meta.Phone
	}
	if meta.Email != "" {
		prefs.Email = meta.Email
	}

	next := domain.CustomerPreferences{
		Name:  prefs.Name,
		Phone: prefs.Phone,
		Email: prefs.Email,
	}

	if err := s.prefsRepo.Save(ctx, sessionID, next); err != nil {
		s.logger.Errorw("failed to save preferences", "session_id", sessionID, "error", err)
	}
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order domain.Order, now time.Time) {
	event := domain.OrderCreatedEvent{
		EventType: domain.EventOrderCreated,
		Order:     order,
		Timestamp: now,
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order created event", "order_number", order.OrderNumber, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderEvents, body); err != nil {
		s.logger.Errorw("failed to publish order created event", "order_number", order.OrderNumber, "error", err)
	}
}

// RestoreLastOrder repopulates the cart and customizations from the backup
// slot. The backup is kept, so restoring twice works.
func (s *OrderService) RestoreLastOrder(ctx context.Context, sessionID string) error {
	backup, err := s.backupRepo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if backup == nil {
		return ErrNothingToRestore
	}

	if err := s.cartRepo.SaveLines(ctx, sessionID, backup.Lines); err != nil {
		return fmt.Errorf("failed to restore cart: %w", err)
	}
	if err := s.custRepo.SaveEntries(ctx, sessionID, backup.Entries); err != nil {
		return fmt.Errorf("failed to restore customizations: %w", err)
	}

	s.logger.Infow("last order restored", "session_id", sessionID, "lines", len(backup.Lines))

	return nil
}

func (s *OrderService) History(ctx context.Context, sessionID string) ([]domain.ArchivedOrder, error) {
	history, err := s.historyRepo.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	return history, nil
}

// Receipt resolves the current cart into priced lines plus the grand
// total, the data any receipt renderer consumes.
func (s *OrderService) Receipt(ctx context.Context, sessionID string) ([]domain.PricedLine, int, error) {
	lines, err := s.cartRepo.Lines(ctx, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cart: %w", err)
	}

	entries, err := s.custRepo.Entries(ctx, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read customizations: %w", err)
	}

	priced := s.pricing.Resolve(lines, entries)

	return priced, Total(priced), nil
}

// ProcessOrderCreated is the worker-side handler for order.created events:
// it writes the order to the durable archive.
func (s *OrderService) ProcessOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	archived := &domain.ArchivedOrder{
		Order:      event.Order,
		ArchivedAt: event.Timestamp,
	}

	if err := s.archiveRepo.Create(ctx, archived); err != nil {
		s.logger.Errorw("failed to archive order", "order_number", event.Order.OrderNumber, "error", err)
		return fmt.Errorf("failed to archive order: %w", err)
	}

	s.logger.Infow("order archived", "order_number", event.Order.OrderNumber)

	return nil
}

func (s *OrderService) RecentOrders(ctx context.Context, limit int64) ([]domain.ArchivedOrder, error) {
	orders, err := s.archiveRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	return orders, nil
}
