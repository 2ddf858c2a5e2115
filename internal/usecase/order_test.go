package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
	testhelpers "github.com/workhive/paymentd/internal/test"
)

func seedOrder(t *testing.T, repo *testhelpers.OrderRepositoryStub, id string, userID int64, status model.OrderStatus) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Order{
		ID:            id,
		UserID:        userID,
		Amount:        100000,
		PaymentMethod: model.PaymentMethodEwallet,
		Status:        status,
	})
	if err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
}

func TestOrderUseCaseGetByID(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 5, model.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	order, err := uc.GetByID(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("get by id returned error: %v", err)
	}
	if order.UserID != 5 {
		t.Fatalf("unexpected order: %+v", order)
	}

	if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 1, model.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	if err := uc.UpdateStatus(context.Background(), "ord-1", model.OrderStatusSettlement); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	order, _ := uc.GetByID(context.Background(), "ord-1")
	if order.Status != model.OrderStatusSettlement {
		t.Fatalf("expected settlement, got %s", order.Status)
	}
}

func TestOrderUseCaseUpdateStatusRejectsUnknown(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 1, model.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	if err := uc.UpdateStatus(context.Background(), "ord-1", "shipped"); !errors.Is(err, domainErrors.ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestOrderUseCaseCompletedImmutable(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 1, model.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	if err := uc.MarkCompleted(context.Background(), "ord-1"); err != nil {
		t.Fatalf("mark completed returned error: %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), "ord-1", model.OrderStatusCancelled); !errors.Is(err, domainErrors.ErrOrderCompleted) {
		t.Fatalf("expected ErrOrderCompleted, got %v", err)
	}
	order, _ := uc.GetByID(context.Background(), "ord-1")
	if order.Status != model.OrderStatusCompleted {
		t.Fatalf("completed order mutated to %s", order.Status)
	}
}

func TestOrderUseCaseListByUser(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 1, model.OrderStatusPending)
	seedOrder(t, repo, "ord-2", 1, model.OrderStatusCompleted)
	seedOrder(t, repo, "ord-3", 2, model.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	orders, err := uc.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
}

func TestOrderUseCaseSelectStalePending(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seedOrder(t, repo, "ord-1", 1, model.OrderStatusPending)
	seedOrder(t, repo, "ord-2", 1, model.OrderStatusCompleted)
	uc := NewOrderUseCase(repo)

	stale, err := uc.SelectStalePending(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("select returned error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != "ord-1" {
		t.Fatalf("expected only the pending order, got %+v", stale)
	}

	stale, err = uc.SelectStalePending(context.Background(), time.Hour, 10)
	if err != nil {
		t.Fatalf("select returned error: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("expected no orders older than an hour, got %d", len(stale))
	}
}
