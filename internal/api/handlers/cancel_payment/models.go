package cancel_payment

// CancelPaymentRequest HTTP request model
// Amount == nil означает возврат всей оставшейся суммы
type CancelPaymentRequest struct {
	Amount *int64 `json:"amount,omitempty"`
	Reason string `json:"reason"`
}
