package dto

import "time"

// OrderResponse is the storefront view of an order.
type OrderResponse struct {
	ID            string    `json:"id"`
	Amount        int64     `json:"amount"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	SnapToken     string    `json:"snap_token,omitempty"`
	RedirectURL   string    `json:"redirect_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
