package worker

import (
	"context"
	"sync"
	"time"

	"github.com/25260173/crema-cafe-demo/internal/repo"
	"github.com/25260173/crema-cafe-demo/internal/submit"
	"go.uber.org/zap"
)

// FallbackOrderWorker retries locally queued orders against the remote
// endpoint. It drains the queue FIFO on a fixed interval and stops a round
// early on the first failed submission, requeuing the order at the front.
type FallbackOrderWorker struct {
	fallbackRepo repo.FallbackOrderRepository
	submitter    submit.Submitter
	interval     time.Duration
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewFallbackOrderWorker(
	fallbackRepo repo.FallbackOrderRepository,
	submitter submit.Submitter,
	interval time.Duration,
	logger *zap.SugaredLogger,
) *FallbackOrderWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &FallbackOrderWorker{
		fallbackRepo: fallbackRepo,
		submitter:    submitter,
		interval:     interval,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *FallbackOrderWorker) Start() error {
	w.logger.Infow("starting fallback order worker", "interval", w.interval)

	w.wg.Add(1)
	go w.run()

	return nil
}

func (w *FallbackOrderWorker) Stop() {
	w.logger.Info("stopping fallback order worker")
	w.cancel()
	w.wg.Wait()
}

func (w *FallbackOrderWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.drain(w.ctx)
		}
	}
}

func (w *FallbackOrderWorker) drain(ctx context.Context) {
	for {
		order, err := w.fallbackRepo.Dequeue(ctx)
		if err != nil {
			w.logger.Errorw("failed to dequeue fallback order", "error", err)
			return
		}
		if order == nil {
			return
		}

		if err := w.submitter.Submit(ctx, *order); err != nil {
			w.logger.Warnw("order endpoint still unavailable", "order_number", order.OrderNumber, "error", err)
			if qerr := w.fallbackRepo.Requeue(ctx, *order); qerr != nil {
				w.logger.Errorw("failed to requeue fallback order", "order_number", order.OrderNumber, "error", qerr)
			}
			return
		}

		w.logger.Infow("fallback order delivered", "order_number", order.OrderNumber)
	}
}
