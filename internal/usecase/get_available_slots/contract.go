package get_available_slots

import (
	"context"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveByPackageAndDate(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error)
}

// PackageRepository интерфейс каталога пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CheckupPackage, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
