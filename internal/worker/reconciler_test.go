package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/workhive/paymentd/internal/domain/model"
	testhelpers "github.com/workhive/paymentd/internal/test"
)

func TestNewReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, 0, logger)
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestReconcilerResolvesStaleOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Order{{{ID: "ord-1", Status: model.OrderStatusPending}}},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		resolved := len(facade.Resolved) > 0
		facade.Unlock()
		if resolved {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Resolved[0] != "ord-1" {
		t.Fatalf("expected ord-1 resolved, got %v", facade.Resolved)
	}
}

func TestReconcilerSurvivesResolveErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var calls int32
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Order{
			{{ID: "ord-1"}},
			{{ID: "ord-2"}},
		},
		ResolveFn: func(ctx context.Context, orderID string) error {
			if atomic.AddInt32(&calls, 1) == 1 {
				return fmt.Errorf("gateway down")
			}
			return nil
		},
	}
	rec := NewReconciler(facade, 5*time.Millisecond, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for second reconcile attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()
}

func TestReconcilerStopWithoutStart(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, 1, logger)
	rec.Stop()
}
