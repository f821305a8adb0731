package payprovider

// ConfirmRequest запрос подтверждения платежа
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// ConfirmResponse ответ провайдера на подтверждение
type ConfirmResponse struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	ApprovedAt string `json:"approvedAt"`
}

// CancelRequest запрос полного или частичного возврата
// Amount == nil означает возврат всей оставшейся суммы
type CancelRequest struct {
	CancelReason string `json:"cancelReason"`
	CancelAmount *int64 `json:"cancelAmount,omitempty"`
}

// CancelResponse ответ провайдера на возврат
type CancelResponse struct {
	PaymentKey string `json:"paymentKey"`
	Status     string `json:"status"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
