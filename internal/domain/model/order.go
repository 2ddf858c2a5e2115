package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusSettlement OrderStatus = "settlement"
	OrderStatusDenied     OrderStatus = "denied"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusExpired    OrderStatus = "expired"
	OrderStatusCompleted  OrderStatus = "completed"
)

// ValidOrderStatus reports whether the value is a known lifecycle status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusSettlement, OrderStatusDenied,
		OrderStatusCancelled, OrderStatusExpired, OrderStatusCompleted:
		return true
	}
	return false
}

// PaymentMethod is the payment channel selected at checkout.
type PaymentMethod string

const (
	PaymentMethodEwallet      PaymentMethod = "ewallet"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ValidPaymentMethod reports whether the value is a supported channel.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodEwallet, PaymentMethodCreditCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Order describes a checkout order. The ID is assigned by this service and is
// the only order identity; identifiers supplied by clients are display-only.
type Order struct {
	ID            string
	UserID        int64
	Amount        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductID     string
	ProductName   string
	PaymentMethod PaymentMethod
	Status        OrderStatus
	SnapToken     string
	RedirectURL   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Completed reports whether the order reached its immutable final state.
func (o Order) Completed() bool {
	return o.Status == OrderStatusCompleted
}
