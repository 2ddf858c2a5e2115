package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidCustomer      = errors.New("invalid customer details")
	ErrInvalidProduct       = errors.New("invalid product reference")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrOrderCompleted       = errors.New("order already completed")
	ErrNoPaymentURL         = errors.New("gateway returned no payment url")
)
