package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/workhive/paymentd/internal/adapter/midtrans"
	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/domain/repository"
)

// CheckoutUseCase creates gateway transactions for new orders.
type CheckoutUseCase struct {
	orders  repository.OrderRepository
	gateway midtrans.Gateway
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, gateway midtrans.Gateway) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, gateway: gateway}
}

// CreateOrder validates the checkout form, opens a gateway transaction and
// persists a pending order. The order ID is assigned here and is the only
// identity ever handed to the gateway or the poller; nothing is persisted
// when the gateway fails or returns no payment URL.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	if err := ValidateCheckout(in); err != nil {
		return nil, err
	}

	orderID := uuid.NewString()

	result, err := u.gateway.CreateTransaction(ctx, midtrans.CreateRequest{
		OrderID:       orderID,
		Amount:        in.Amount,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway transaction: %w", err)
	}

	order := &model.Order{
		ID:            orderID,
		UserID:        userID,
		Amount:        in.Amount,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		PaymentMethod: in.PaymentMethod,
		Status:        model.OrderStatusPending,
		SnapToken:     result.SnapToken,
		RedirectURL:   result.RedirectURL,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	return order, nil
}
