package prepare_payment

import (
	"context"

	"github.com/avdeew/HCC-ReservationService/internal/service/payments/models"
)

type PaymentService interface {
	Prepare(ctx context.Context, req *models.PreparePaymentRequest) (*models.PreparePaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
