package confirm_payment

import (
	"time"

	confirmPayment "github.com/avdeew/HCC-ReservationService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
// Тройка приходит от платёжного окна провайдера
type ConfirmPaymentRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	PaymentID         int64   `json:"paymentId"`
	ReservationID     int64   `json:"reservationId"`
	OrderID           string  `json:"orderId"`
	PaymentKey        string  `json:"paymentKey"`
	Amount            int64   `json:"amount"`
	Status            string  `json:"status"`
	PaidAt            *string `json:"paidAt,omitempty"` // ISO 8601 format
	ReservationStatus string  `json:"reservationStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	out := &ConfirmPaymentResponse{
		PaymentID:         resp.PaymentID,
		ReservationID:     resp.ReservationID,
		OrderID:           resp.OrderID,
		PaymentKey:        resp.PaymentKey,
		Amount:            resp.Amount,
		Status:            resp.Status,
		ReservationStatus: resp.ReservationStatus,
	}

	if resp.PaidAt != nil {
		paidAt := resp.PaidAt.Format(time.RFC3339)
		out.PaidAt = &paidAt
	}

	return out
}
