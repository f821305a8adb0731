package create_blocked_slots

import (
	"context"

	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots/models"
)

type BlockedSlotService interface {
	CreateBulk(ctx context.Context, req *models.CreateBlocksRequest) (*models.CreateBlocksResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
