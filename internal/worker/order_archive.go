package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/queue"
	"github.com/25260173/crema-cafe-demo/internal/service"
	"go.uber.org/zap"
)

// OrderArchiveWorker consumes order.created events and writes them to the
// durable archive.
type OrderArchiveWorker struct {
	orderService *service.OrderService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewOrderArchiveWorker(
	orderService *service.OrderService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderArchiveWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderArchiveWorker{
		orderService: orderService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *OrderArchiveWorker) Start() error {
	w.logger.Info("starting order archive worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderEvents, w.handleMessage)
}

func (w *OrderArchiveWorker) Stop() {
	w.logger.Info("stopping order archive worker")
	w.cancel()
}

func (w *OrderArchiveWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal order event", "error", err)
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	w.logger.Infow("processing order event", "event_type", event.EventType, "order_number", event.Order.OrderNumber)

	if err := w.orderService.ProcessOrderCreated(ctx, event); err != nil {
		w.logger.Errorw("failed to process order event", "order_number", event.Order.OrderNumber, "error", err)
		return err
	}

	return nil
}
