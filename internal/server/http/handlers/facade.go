package handlers

import (
	"context"

	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/pkg/urlhint"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// PaymentFacade encapsulates checkout and poll control operations.
type PaymentFacade interface {
	Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error)
	CheckStatus(ctx context.Context, orderID string) (*model.TransactionState, error)
	StartPoll(ctx context.Context, orderID string) error
	CancelPoll(orderID string) bool
	ReportPaymentPageEvent(ctx context.Context, orderID, rawURL string) (urlhint.Hint, bool, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// OrderFacade provides order queries for the storefront screens.
type OrderFacade interface {
	OrderByID(ctx context.Context, userID int64, orderID string) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
}

// NotificationFacade provides notification operations.
type NotificationFacade interface {
	RecordPaymentSuccess(ctx context.Context, userID int64, orderID string) (*model.Notification, error)
	Notifications(ctx context.Context, userID int64) ([]model.Notification, error)
}

// ServiceFacade aggregates the full set of operations used across handlers.
type ServiceFacade interface {
	AuthFacade
	PaymentFacade
	OrderFacade
	NotificationFacade
}
