package domain

import "time"

// PaymentStatus represents the status of a payment attempt
type PaymentStatus string

const (
	PaymentStatusReady            PaymentStatus = "ready"             // чекаут подготовлен, оплата не подтверждена
	PaymentStatusPaid             PaymentStatus = "paid"              // оплата подтверждена провайдером
	PaymentStatusCancelled        PaymentStatus = "cancelled"         // возврат на полную сумму
	PaymentStatusPartialCancelled PaymentStatus = "partial_cancelled" // частичный возврат
	PaymentStatusFailed           PaymentStatus = "failed"            // провайдер отклонил подтверждение
)

// Payment represents a single payment attempt for a reservation
// Запись создается в статусе ready до завершения оплаты, что отделяет
// проверку вместимости слота от факта оплаты
type Payment struct {
	ID            int64
	ReservationID int64
	OrderID       string  // внутренний идентификатор заказа, уникальный
	PaymentKey    *string // ключ провайдера, появляется при подтверждении, уникальный
	Amount        int64
	Status        PaymentStatus
	PaidAt        *time.Time
	FailReason    *string
	Cancels       []PaymentCancel
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentCancel одна запись полного или частичного возврата
type PaymentCancel struct {
	ID        int64
	PaymentID int64
	Amount    int64
	Reason    string
	CreatedAt time.Time
}

// CancelledAmount returns the total amount already refunded
func (p *Payment) CancelledAmount() int64 {
	var total int64
	for _, c := range p.Cancels {
		total += c.Amount
	}
	return total
}

// RemainingAmount returns the amount still held by the provider
func (p *Payment) RemainingAmount() int64 {
	return p.Amount - p.CancelledAmount()
}

// CanBeConfirmed returns true if the payment is awaiting confirmation
func (p *Payment) CanBeConfirmed() bool {
	return p.Status == PaymentStatusReady
}

// CanBeCancelled returns true if a refund can be issued against the payment
func (p *Payment) CanBeCancelled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusPartialCancelled
}
