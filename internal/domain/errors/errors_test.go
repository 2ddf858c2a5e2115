package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAlreadyExists,
		ErrNotFound,
		ErrInvalidCredentials,
		ErrInvalidAmount,
		ErrInvalidCustomer,
		ErrInvalidProduct,
		ErrInvalidPaymentMethod,
		ErrInvalidOrderStatus,
		ErrOrderCompleted,
		ErrNoPaymentURL,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create transaction: %w", ErrNoPaymentURL)
	if !errors.Is(wrapped, ErrNoPaymentURL) {
		t.Fatal("expected wrapped error to match sentinel")
	}
}
