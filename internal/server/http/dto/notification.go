package dto

import "time"

// PaymentSuccessRequest describes POST /api/notifications/payment-success payload.
type PaymentSuccessRequest struct {
	OrderID string `json:"order_id"`
}

// NotificationResponse is one stored notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
