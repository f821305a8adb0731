package models

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

// Request модели

// PreparePaymentRequest запрос на подготовку платежа
type PreparePaymentRequest struct {
	UserID        int64 `json:"userId"`
	ReservationID int64 `json:"reservationId"`
}

// CancelPaymentRequest запрос на полный или частичный возврат
// Amount == nil означает возврат всей оставшейся суммы
type CancelPaymentRequest struct {
	Amount *int64 `json:"amount,omitempty"`
	Reason string `json:"reason"`
}

// Response модели

// PreparePaymentResponse ответ с подготовленным платежом
// OrderID передаётся в платёжное окно провайдера
type PreparePaymentResponse struct {
	PaymentID     int64  `json:"paymentId"`
	ReservationID int64  `json:"reservationId"`
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

// CancelPaymentResponse ответ на возврат платежа
type CancelPaymentResponse struct {
	PaymentID       int64  `json:"paymentId"`
	PaymentKey      string `json:"paymentKey"`
	Status          string `json:"status"`
	CancelledAmount int64  `json:"cancelledAmount"`
	RemainingAmount int64  `json:"remainingAmount"`
}

// PaymentCancelResponse запись одного возврата
type PaymentCancelResponse struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO подготовки
func FromDomainPayment(p *domain.Payment) *PreparePaymentResponse {
	if p == nil {
		return nil
	}
	return &PreparePaymentResponse{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Status:        string(p.Status),
	}
}
