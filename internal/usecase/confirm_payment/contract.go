package confirm_payment

import (
	"context"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/internal/integrations/payprovider"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkPaid(ctx context.Context, id int64, paymentKey string, paidAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error
	SetPaymentID(ctx context.Context, id int64, paymentID int64) error
}

// PaymentProvider интерфейс клиента платёжного провайдера
type PaymentProvider interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*payprovider.ConfirmResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
