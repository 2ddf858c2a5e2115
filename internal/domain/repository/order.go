package repository

import (
	"context"
	"time"

	"github.com/workhive/paymentd/internal/domain/model"
)

// OrderRepository persists checkout orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// UpdateStatus transitions an order. Completed orders are immutable:
	// attempts to change them return ErrOrderCompleted.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	// SelectStalePending returns pending orders untouched for at least age.
	SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error)
}
