package model

// CheckoutInput is the raw checkout form data submitted by a client.
type CheckoutInput struct {
	Amount        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductID     string
	ProductName   string
	PaymentMethod PaymentMethod
}
