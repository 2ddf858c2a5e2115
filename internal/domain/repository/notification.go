package repository

import (
	"context"

	"github.com/workhive/paymentd/internal/domain/model"
)

// NotificationRepository persists payment notification records.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
}
