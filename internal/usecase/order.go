package usecase

import (
	"context"
	"time"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// GetByID fetches one order.
func (u *OrderUseCase) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// ListByUser returns orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateStatus transitions an order to the given lifecycle status. Unknown
// statuses are rejected; completed orders stay immutable.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if !model.ValidOrderStatus(status) {
		return domainErrors.ErrInvalidOrderStatus
	}
	return u.orders.UpdateStatus(ctx, id, status)
}

// MarkCompleted moves an order into its immutable final state.
func (u *OrderUseCase) MarkCompleted(ctx context.Context, id string) error {
	return u.orders.UpdateStatus(ctx, id, model.OrderStatusCompleted)
}

// SelectStalePending returns pending orders untouched for at least age,
// ready for background reconciliation.
func (u *OrderUseCase) SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, age, limit)
}
