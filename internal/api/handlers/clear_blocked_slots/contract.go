package clear_blocked_slots

import (
	"context"

	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots/models"
)

type BlockedSlotService interface {
	ClearByDate(ctx context.Context, req *models.ClearBlocksRequest) (*models.ClearBlocksResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
