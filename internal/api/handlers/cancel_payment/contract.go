package cancel_payment

import (
	"context"

	"github.com/avdeew/HCC-ReservationService/internal/service/payments/models"
)

type PaymentService interface {
	Cancel(ctx context.Context, paymentKey string, req *models.CancelPaymentRequest) (*models.CancelPaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
