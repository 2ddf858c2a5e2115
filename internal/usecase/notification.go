package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/domain/repository"
)

// NotificationUseCase records and lists payment notifications.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// RecordPaymentSuccess stores a payment success notification for the user.
func (u *NotificationUseCase) RecordPaymentSuccess(ctx context.Context, userID int64, orderID, productName string) (*model.Notification, error) {
	n := &model.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		OrderID: orderID,
		Title:   "Pembayaran Berhasil",
		Body:    fmt.Sprintf("Pembayaran untuk %s telah dikonfirmasi.", productName),
	}
	if err := u.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUser returns stored notifications, newest first.
func (u *NotificationUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, userID)
}
