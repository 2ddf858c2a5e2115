package usecase

import (
	"strings"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
)

// ValidateCheckout checks checkout form data before any gateway call.
// Amount must be a positive integer in the smallest currency unit; customer
// details, product reference and payment method must all be present.
func ValidateCheckout(in model.CheckoutInput) error {
	if in.Amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerEmail) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" {
		return domainErrors.ErrInvalidCustomer
	}
	if !strings.Contains(in.CustomerEmail, "@") {
		return domainErrors.ErrInvalidCustomer
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return domainErrors.ErrInvalidProduct
	}
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		return domainErrors.ErrInvalidPaymentMethod
	}
	return nil
}
