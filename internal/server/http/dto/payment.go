package dto

// CustomerDetails carries the buyer identity for a checkout.
type CustomerDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ItemDetails identifies the purchased product.
type ItemDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CheckoutRequest describes POST /api/payment/midtrans/create payload.
type CheckoutRequest struct {
	GrossAmount     int64           `json:"gross_amount"`
	PaymentType     string          `json:"payment_type"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	ItemDetails     ItemDetails     `json:"item_details"`
}

// CheckoutData is the payload of a successful checkout response.
type CheckoutData struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// CheckoutResponse wraps checkout results in the success envelope.
type CheckoutResponse struct {
	Success bool         `json:"success"`
	Data    CheckoutData `json:"data"`
}

// StatusData is the normalized transaction status payload.
type StatusData struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type,omitempty"`
}

// StatusResponse wraps a status check in the success envelope.
type StatusResponse struct {
	Success bool       `json:"success"`
	Data    StatusData `json:"data"`
}

// PageEventRequest describes a payment page navigation report.
type PageEventRequest struct {
	OrderID string `json:"order_id"`
	URL     string `json:"url"`
}

// PageEventResponse reports how a navigation event was handled.
type PageEventResponse struct {
	Hint  string `json:"hint"`
	Acted bool   `json:"acted"`
}

// UpdateStatusRequest describes PUT /api/payment/orders/:orderID/status payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse carries a machine-readable failure description.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
