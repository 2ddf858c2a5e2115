package test

import (
	"context"
	"sync"

	"github.com/workhive/paymentd/internal/adapter/midtrans"
	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/pkg/urlhint"
)

// GatewayStub fakes the payment gateway for use case and facade tests.
type GatewayStub struct {
	CreateFn func(context.Context, midtrans.CreateRequest) (*midtrans.CreateResult, error)
	FetchFn  func(context.Context, string) (*model.TransactionState, error)
}

// CreateTransaction delegates to CreateFn or returns a canned result.
func (s GatewayStub) CreateTransaction(ctx context.Context, req midtrans.CreateRequest) (*midtrans.CreateResult, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &midtrans.CreateResult{
		SnapToken:   "snap-" + req.OrderID,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + req.OrderID,
	}, nil
}

// FetchStatus delegates to FetchFn or reports a pending transaction.
func (s GatewayStub) FetchStatus(ctx context.Context, orderID string) (*model.TransactionState, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, orderID)
	}
	return &model.TransactionState{OrderID: orderID, Status: model.TransactionStatusPending}, nil
}

// PublisherStub records payment events instead of publishing them.
type PublisherStub struct {
	mu        sync.Mutex
	Succeeded []string
	Failed    []string
	Err       error
}

// PaymentSucceeded records the order identifier.
func (s *PublisherStub) PaymentSucceeded(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Succeeded = append(s.Succeeded, order.ID)
	return nil
}

// PaymentFailed records the order identifier.
func (s *PublisherStub) PaymentFailed(ctx context.Context, order *model.Order, status model.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Failed = append(s.Failed, order.ID)
	return nil
}

// Close is a no-op.
func (s *PublisherStub) Close() error { return nil }

// SucceededCount returns how many success events were recorded.
func (s *PublisherStub) SucceededCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Succeeded)
}

// FailedCount returns how many failure events were recorded.
func (s *PublisherStub) FailedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Failed)
}

// PaymentFacadeStub simulates checkout and poll control interactions.
type PaymentFacadeStub struct {
	CheckoutFn     func(context.Context, int64, model.CheckoutInput) (*model.Order, error)
	CheckStatusFn  func(context.Context, string) (*model.TransactionState, error)
	StartPollFn    func(context.Context, string) error
	CancelPollFn   func(string) bool
	PageEventFn    func(context.Context, string, string) (urlhint.Hint, bool, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
}

// Checkout delegates to CheckoutFn or echoes a pending order.
func (s PaymentFacadeStub) Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, in)
	}
	return &model.Order{
		ID:          "order-stub",
		UserID:      userID,
		Amount:      in.Amount,
		Status:      model.OrderStatusPending,
		SnapToken:   "snap-token",
		RedirectURL: "https://example.test/pay",
	}, nil
}

// CheckStatus delegates to CheckStatusFn or reports pending.
func (s PaymentFacadeStub) CheckStatus(ctx context.Context, orderID string) (*model.TransactionState, error) {
	if s.CheckStatusFn != nil {
		return s.CheckStatusFn(ctx, orderID)
	}
	return &model.TransactionState{OrderID: orderID, Status: model.TransactionStatusPending}, nil
}

// StartPoll delegates to StartPollFn.
func (s PaymentFacadeStub) StartPoll(ctx context.Context, orderID string) error {
	if s.StartPollFn != nil {
		return s.StartPollFn(ctx, orderID)
	}
	return nil
}

// CancelPoll delegates to CancelPollFn.
func (s PaymentFacadeStub) CancelPoll(orderID string) bool {
	if s.CancelPollFn != nil {
		return s.CancelPollFn(orderID)
	}
	return false
}

// ReportPaymentPageEvent delegates to PageEventFn.
func (s PaymentFacadeStub) ReportPaymentPageEvent(ctx context.Context, orderID, rawURL string) (urlhint.Hint, bool, error) {
	if s.PageEventFn != nil {
		return s.PageEventFn(ctx, orderID, rawURL)
	}
	return urlhint.HintNone, false, nil
}

// UpdateOrderStatus delegates to UpdateStatusFn.
func (s PaymentFacadeStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

// WorkerFacadeStub records reconciler interactions.
type WorkerFacadeStub struct {
	sync.Mutex
	Batches   [][]model.Order
	Resolved  []string
	ResolveFn func(context.Context, string) error
	Err       error
}

// StalePendingOrders pops the next prepared batch.
func (s *WorkerFacadeStub) StalePendingOrders(ctx context.Context) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// ResolveOrder records the order identifier.
func (s *WorkerFacadeStub) ResolveOrder(ctx context.Context, orderID string) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, orderID)
	}
	s.Lock()
	defer s.Unlock()
	s.Resolved = append(s.Resolved, orderID)
	return nil
}

// OrderFacadeStub simulates order queries for handler tests.
type OrderFacadeStub struct {
	OrderByIDFn func(context.Context, int64, string) (*model.Order, error)
	OrdersFn    func(context.Context, int64) ([]model.Order, error)
}

// OrderByID delegates to OrderByIDFn.
func (s OrderFacadeStub) OrderByID(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if s.OrderByIDFn != nil {
		return s.OrderByIDFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// Orders delegates to OrdersFn.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

// NotificationFacadeStub simulates notification interactions.
type NotificationFacadeStub struct {
	RecordFn func(context.Context, int64, string) (*model.Notification, error)
	ListFn   func(context.Context, int64) ([]model.Notification, error)
}

// RecordPaymentSuccess delegates to RecordFn.
func (s NotificationFacadeStub) RecordPaymentSuccess(ctx context.Context, userID int64, orderID string) (*model.Notification, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, userID, orderID)
	}
	return &model.Notification{ID: "n-1", UserID: userID, OrderID: orderID}, nil
}

// Notifications delegates to ListFn.
func (s NotificationFacadeStub) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}
