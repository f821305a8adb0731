package get_admin_reservations

import (
	"context"

	"github.com/avdeew/HCC-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListWithFilter(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
