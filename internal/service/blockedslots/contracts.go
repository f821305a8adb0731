package blockedslots

import (
	"context"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	CreateBatch(ctx context.Context, blocks []*domain.BlockedSlot) ([]*domain.BlockedSlot, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
	DeleteByDate(ctx context.Context, date time.Time, packageID *int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
