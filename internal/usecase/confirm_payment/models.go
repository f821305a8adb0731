package confirm_payment

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

// Request модель запроса подтверждения платежа
// Тройка (paymentKey, orderId, amount) приходит от клиента после
// успешного прохождения платёжного окна провайдера
type Request struct {
	UserID     int64  // ID владельца бронирования
	PaymentKey string // Ключ платежа, выданный провайдером
	OrderID    string // Внутренний идентификатор заказа
	Amount     int64  // Сумма, которую клиент считает оплаченной
}

// Response модель ответа с подтверждённым платежом
type Response struct {
	PaymentID     int64
	ReservationID int64
	OrderID       string
	PaymentKey    string
	Amount        int64
	Status        string
	PaidAt        *time.Time

	ReservationStatus string
}

func fromDomain(p *domain.Payment, reservationStatus domain.ReservationStatus) *Response {
	resp := &Response{
		PaymentID:         p.ID,
		ReservationID:     p.ReservationID,
		OrderID:           p.OrderID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		PaidAt:            p.PaidAt,
		ReservationStatus: string(reservationStatus),
	}
	if p.PaymentKey != nil {
		resp.PaymentKey = *p.PaymentKey
	}
	return resp
}
