package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	packageRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/checkuppackage"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	packageRepo     PackageRepository
	blockedSlotRepo BlockedSlotRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	packageRepo PackageRepository,
	blockedSlotRepo BlockedSlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		packageRepo:     packageRepo,
		blockedSlotRepo: blockedSlotRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
//
// Картина носит информационный характер: окончательное решение о допуске
// принимает транзакция создания бронирования. Ответ может устареть между
// чтением и бронированием.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: package=%d, date=%s",
		req.PackageID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("GetAvailableSlots: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// Выходной день центра: сетка видна, но каждая метка недоступна
	if domain.IsClosedDay(date) {
		uc.logger.Info("GetAvailableSlots: date %s is a closure day", date.Format(domain.DateFormat))
		return &Response{
			PackageID: pkg.ID,
			Date:      date,
			Slots:     closedGrid(),
		}, nil
	}

	// День недели, в который пакет не проводится: слотов нет вовсе
	if !pkg.IsAvailableOn(date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: package id=%d is not offered on %s", pkg.ID, date.Weekday())
		return &Response{
			PackageID: pkg.ID,
			Date:      date,
			Slots:     []domain.AvailableSlot{},
		}, nil
	}

	blocks, err := uc.blockedSlotRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	active, err := uc.reservationRepo.ListActiveByPackageAndDate(ctx, pkg.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list active reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list active reservations: %v", ErrInternal, err)
	}

	slots := buildSlots(pkg, date, blocks, active)

	uc.logger.Info("GetAvailableSlots: returning %d slots for package=%d, date=%s",
		len(slots), pkg.ID, date.Format(domain.DateFormat))

	return &Response{
		PackageID: pkg.ID,
		Date:      date,
		Slots:     slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// closedGrid возвращает полную сетку дня, каждая метка недоступна
func closedGrid() []domain.AvailableSlot {
	grid := domain.DailyGrid()
	slots := make([]domain.AvailableSlot, 0, len(grid))
	for _, t := range grid {
		slots = append(slots, domain.AvailableSlot{
			Time:           t,
			Available:      false,
			RemainingSlots: 0,
			TotalSlots:     0,
		})
	}
	return slots
}

// buildSlots собирает картину доступности по каждой метке сетки
// Порядок строго хронологический, независимо от доступности
func buildSlots(pkg *domain.CheckupPackage, date time.Time, blocks []*domain.BlockedSlot, active []*domain.Reservation) []domain.AvailableSlot {
	occupied := make(map[types.TimeString]int, len(active))
	for _, res := range active {
		if !res.IsActive() {
			continue
		}
		occupied[res.ReservationTime]++
	}

	grid := domain.SlotsFor(pkg, date)
	slots := make([]domain.AvailableSlot, 0, len(grid))
	for _, t := range grid {
		if domain.IsCellBlocked(blocks, pkg.ID, date, t) {
			slots = append(slots, domain.AvailableSlot{
				Time:           t,
				Available:      false,
				RemainingSlots: 0,
				TotalSlots:     pkg.MaxReservationsPerSlot,
			})
			continue
		}

		remaining := pkg.MaxReservationsPerSlot - occupied[t]
		if remaining < 0 {
			remaining = 0
		}
		slots = append(slots, domain.AvailableSlot{
			Time:           t,
			Available:      remaining > 0,
			RemainingSlots: remaining,
			TotalSlots:     pkg.MaxReservationsPerSlot,
		})
	}
	return slots
}
