package model

// TransactionStatus is the gateway-reported payment outcome.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusCapture    TransactionStatus = "capture"
	TransactionStatusSettlement TransactionStatus = "settlement"
	TransactionStatusDeny       TransactionStatus = "deny"
	TransactionStatusCancel     TransactionStatus = "cancel"
	TransactionStatusExpire     TransactionStatus = "expire"
)

// TerminalSuccess reports whether no further transition is expected and the
// payment went through.
func (s TransactionStatus) TerminalSuccess() bool {
	return s == TransactionStatusCapture || s == TransactionStatusSettlement
}

// TerminalFailure reports whether no further transition is expected and the
// payment did not go through.
func (s TransactionStatus) TerminalFailure() bool {
	return s == TransactionStatusDeny || s == TransactionStatusCancel || s == TransactionStatusExpire
}

// Terminal reports whether the status is final either way.
func (s TransactionStatus) Terminal() bool {
	return s.TerminalSuccess() || s.TerminalFailure()
}

// TransactionState is the canonical shape of a gateway status response.
type TransactionState struct {
	OrderID     string
	Status      TransactionStatus
	PaymentType string
}

// OrderStatusFor maps a terminal transaction status onto the order lifecycle.
// Non-terminal statuses map to pending.
func OrderStatusFor(s TransactionStatus) OrderStatus {
	switch s {
	case TransactionStatusCapture, TransactionStatusSettlement:
		return OrderStatusSettlement
	case TransactionStatusDeny:
		return OrderStatusDenied
	case TransactionStatusCancel:
		return OrderStatusCancelled
	case TransactionStatusExpire:
		return OrderStatusExpired
	default:
		return OrderStatusPending
	}
}

// Poll outcome labels reported to callers of the status poller.
const (
	PollOutcomeSuccess   = "success"
	PollOutcomeFailure   = "failure"
	PollOutcomeTimeout   = "timeout"
	PollOutcomeError     = "error"
	PollOutcomeCancelled = "cancelled"
)

// PollResult is the terminal result of one polling session.
// Completed is true only when the gateway reported a terminal status;
// timeout, transport exhaustion and cancellation leave it false.
type PollResult struct {
	Completed   bool
	Success     bool
	Status      string
	Transaction *TransactionState
}
