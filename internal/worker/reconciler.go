package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/workhive/paymentd/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the reconciler.
type PaymentFacade interface {
	StalePendingOrders(ctx context.Context) ([]model.Order, error)
	ResolveOrder(ctx context.Context, orderID string) error
}

// Reconciler sweeps stale pending orders and reconciles them against the
// gateway. It catches payments whose polling session was lost to a client
// crash or exhausted its attempts.
type Reconciler struct {
	facade        PaymentFacade
	sweepInterval time.Duration
	workers       int
	logger        *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PaymentFacade, sweepInterval time.Duration, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	return &Reconciler{
		facade:        facade,
		sweepInterval: sweepInterval,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Order, workers*4),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx)
	if err != nil {
		r.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			if err := r.facade.ResolveOrder(ctx, order.ID); err != nil {
				r.logger.Error("reconcile order failed",
					slog.String("order_id", order.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
