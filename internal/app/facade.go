package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/workhive/paymentd/internal/adapter/events"
	"github.com/workhive/paymentd/internal/adapter/midtrans"
	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/pkg/urlhint"
	"github.com/workhive/paymentd/internal/poller"
	"github.com/workhive/paymentd/internal/usecase"
)

// PaymentFacade is the single entry point the transport and worker layers
// talk to. It owns terminal state routing: whatever path observed a terminal
// gateway status (poll session, manual check or background sweep), the order
// update, the notification and the published event all happen here.
type PaymentFacade struct {
	auth          *usecase.AuthUseCase
	checkout      *usecase.CheckoutUseCase
	orders        *usecase.OrderUseCase
	notifications *usecase.NotificationUseCase
	poller        *poller.Poller
	publisher     events.Publisher
	debounce      *urlhint.Debouncer
	logger        *slog.Logger

	pollOpts       poller.Options
	staleAge       time.Duration
	staleBatch     int
	resolveTimeout time.Duration
}

// NewPaymentFacade wires the facade from its collaborators.
func NewPaymentFacade(
	auth *usecase.AuthUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	notifications *usecase.NotificationUseCase,
	p *poller.Poller,
	publisher events.Publisher,
	debounce *urlhint.Debouncer,
	logger *slog.Logger,
	pollOpts poller.Options,
	staleAge time.Duration,
	staleBatch int,
) *PaymentFacade {
	return &PaymentFacade{
		auth:           auth,
		checkout:       checkout,
		orders:         orders,
		notifications:  notifications,
		poller:         p,
		publisher:      publisher,
		debounce:       debounce,
		logger:         logger,
		pollOpts:       pollOpts,
		staleAge:       staleAge,
		staleBatch:     staleBatch,
		resolveTimeout: 10 * time.Second,
	}
}

// Register creates a user and returns an auth token.
func (f *PaymentFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

// Authenticate validates credentials and returns an auth token.
func (f *PaymentFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

// ParseToken extracts the user ID from an auth token.
func (f *PaymentFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// Checkout validates the form, opens a gateway transaction and stores the
// pending order.
func (f *PaymentFacade) Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	return f.checkout.CreateOrder(ctx, userID, in)
}

// OrderByID returns the user's order. Orders of other users are reported as
// not found rather than forbidden.
func (f *PaymentFacade) OrderByID(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Orders lists the user's orders.
func (f *PaymentFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

// CheckStatus performs one authoritative gateway status check. A terminal
// status is routed immediately, so the manual "check status" path resolves
// orders the same way a polling session does.
func (f *PaymentFacade) CheckStatus(ctx context.Context, orderID string) (*model.TransactionState, error) {
	state, err := f.poller.CheckStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if state.Status.Terminal() {
		f.resolveTerminal(ctx, state)
	}
	return state, nil
}

// StartPoll launches a polling session for a pending order. A session already
// running for the order is superseded. The session is detached from the
// request context: it keeps polling after the request returns.
func (f *PaymentFacade) StartPoll(ctx context.Context, orderID string) error {
	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Completed() {
		return domainErrors.ErrOrderCompleted
	}

	f.poller.Start(context.Background(), orderID, f.pollOpts,
		func(status model.TransactionStatus) {
			f.logger.Debug("poll update", slog.String("order_id", orderID), slog.String("status", string(status)))
		},
		func(res model.PollResult) {
			f.routePollResult(orderID, res)
		},
	)
	return nil
}

// CancelPoll stops the active session for the order, if any, and clears the
// page event debounce history.
func (f *PaymentFacade) CancelPoll(orderID string) bool {
	f.debounce.Forget(orderID)
	return f.poller.Cancel(orderID)
}

// ReportPaymentPageEvent processes a payment page navigation event. URL hints
// only accelerate polling; the gateway status check stays authoritative. The
// returned bool reports whether the event was acted upon (false for hintless
// URLs and debounced repeats).
func (f *PaymentFacade) ReportPaymentPageEvent(ctx context.Context, orderID, rawURL string) (urlhint.Hint, bool, error) {
	hint := urlhint.Detect(rawURL)
	if hint == urlhint.HintNone {
		return urlhint.HintNone, false, nil
	}
	if !f.debounce.Observe(orderID, rawURL) {
		return hint, false, nil
	}
	if f.poller.Nudge(orderID) {
		return hint, true, nil
	}
	if err := f.StartPoll(ctx, orderID); err != nil {
		return hint, false, err
	}
	return hint, true, nil
}

// UpdateOrderStatus transitions an order's lifecycle status.
func (f *PaymentFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

// RecordPaymentSuccess stores a payment success notification for the user's
// order.
func (f *PaymentFacade) RecordPaymentSuccess(ctx context.Context, userID int64, orderID string) (*model.Notification, error) {
	order, err := f.OrderByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return f.notifications.RecordPaymentSuccess(ctx, userID, order.ID, order.ProductName)
}

// Notifications lists the user's notifications.
func (f *PaymentFacade) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	return f.notifications.ListByUser(ctx, userID)
}

// StalePendingOrders returns pending orders due for background
// reconciliation.
func (f *PaymentFacade) StalePendingOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.SelectStalePending(ctx, f.staleAge, f.staleBatch)
}

// ResolveOrder checks one order against the gateway and routes a terminal
// status. Non-terminal statuses leave the order untouched.
func (f *PaymentFacade) ResolveOrder(ctx context.Context, orderID string) error {
	state, err := f.poller.CheckStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, midtrans.ErrTransactionNotFound) {
			// The customer never reached the payment page; leave the order
			// pending until it expires gateway-side.
			return nil
		}
		return err
	}
	if state.Status.Terminal() {
		f.resolveTerminal(ctx, state)
	}
	return nil
}

// routePollResult handles the terminal result of a polling session. It runs
// on the session goroutine after the originating request is long gone, so it
// builds its own context.
func (f *PaymentFacade) routePollResult(orderID string, res model.PollResult) {
	switch res.Status {
	case model.PollOutcomeSuccess, model.PollOutcomeFailure:
		ctx, cancel := context.WithTimeout(context.Background(), f.resolveTimeout)
		defer cancel()
		f.resolveTerminal(ctx, res.Transaction)
	case model.PollOutcomeTimeout:
		// Payment may still complete later; the order stays pending for the
		// manual check and the background sweep.
		f.logger.Info("poll exhausted without terminal status", slog.String("order_id", orderID))
	case model.PollOutcomeError:
		f.logger.Warn("poll gave up, gateway never responded", slog.String("order_id", orderID))
	case model.PollOutcomeCancelled:
		f.logger.Debug("poll session cancelled", slog.String("order_id", orderID))
	}
}

func (f *PaymentFacade) resolveTerminal(ctx context.Context, state *model.TransactionState) {
	orderID := state.OrderID
	f.debounce.Forget(orderID)

	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		f.logger.Error("terminal status for unknown order", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return
	}
	if order.Completed() {
		return
	}

	if state.Status.TerminalSuccess() {
		if err := f.orders.MarkCompleted(ctx, orderID); err != nil {
			f.logger.Error("mark order completed", slog.String("order_id", orderID), slog.String("error", err.Error()))
			return
		}
		if _, err := f.notifications.RecordPaymentSuccess(ctx, order.UserID, order.ID, order.ProductName); err != nil {
			f.logger.Warn("record success notification", slog.String("order_id", orderID), slog.String("error", err.Error()))
		}
		if err := f.publisher.PaymentSucceeded(ctx, order); err != nil {
			f.logger.Warn("publish payment succeeded", slog.String("order_id", orderID), slog.String("error", err.Error()))
		}
		f.logger.Info("payment settled", slog.String("order_id", orderID), slog.String("status", string(state.Status)))
		return
	}

	if err := f.orders.UpdateStatus(ctx, orderID, model.OrderStatusFor(state.Status)); err != nil {
		f.logger.Error("update failed order", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return
	}
	if err := f.publisher.PaymentFailed(ctx, order, state.Status); err != nil {
		f.logger.Warn("publish payment failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
	}
	f.logger.Info("payment failed", slog.String("order_id", orderID), slog.String("status", string(state.Status)))
}
