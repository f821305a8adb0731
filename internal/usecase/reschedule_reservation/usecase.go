package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	packageRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/checkuppackage"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// UseCase use case для административного переноса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	packageRepo     PackageRepository
	blockedSlotRepo BlockedSlotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	packageRepo PackageRepository,
	blockedSlotRepo BlockedSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		packageRepo:     packageRepo,
		blockedSlotRepo: blockedSlotRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
//
// Перенос проходит ту же проверку допуска, что и создание, в одной
// сериализуемой транзакции. Само переносимое бронирование исключается
// из подсчёта занятости: перенос внутри той же ячейки не считает
// бронирование дважды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: id=%d, newDate=%s, newTime=%s",
		req.ReservationID, req.NewDate.Format(domain.DateFormat), req.NewTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	newDate := domain.DateOnly(req.NewDate)

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if !res.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d has status %s, cannot reschedule",
				res.ID, res.Status)
			return ErrNotReschedulable
		}

		pkg, err := uc.packageRepo.GetByID(txCtx, res.PackageID)
		if err != nil {
			if errors.Is(err, packageRepo.ErrPackageNotFound) {
				uc.logger.Error("RescheduleReservation: package id=%d missing for reservation id=%d",
					res.PackageID, res.ID)
				return fmt.Errorf("%w: package id=%d not found", ErrInternal, res.PackageID)
			}
			uc.logger.Error("RescheduleReservation: failed to get package id=%d: %v", res.PackageID, err)
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}

		if err := validateSlot(pkg, newDate, req.NewTime, now); err != nil {
			uc.logger.Warn("RescheduleReservation: target slot validation failed: %v", err)
			return err
		}

		blocks, err := uc.blockedSlotRepo.ListByDate(txCtx, newDate)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to list blocked slots: %v", err)
			return fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
		}

		if domain.IsCellBlocked(blocks, pkg.ID, newDate, req.NewTime) {
			uc.logger.Warn("RescheduleReservation: target slot blocked, package=%d, date=%s, time=%s",
				pkg.ID, newDate.Format(domain.DateFormat), req.NewTime)
			return ErrSlotBlocked
		}

		active, err := uc.reservationRepo.ListActiveByPackageAndDate(txCtx, pkg.ID, newDate)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to list active reservations: %v", err)
			return fmt.Errorf("%w: failed to list active reservations: %v", ErrInternal, err)
		}

		occupied := countInCell(active, req.NewTime, res.ID)
		if occupied >= pkg.MaxReservationsPerSlot {
			uc.logger.Warn("RescheduleReservation: target slot full, %d/%d places taken",
				occupied, pkg.MaxReservationsPerSlot)
			return ErrSlotFull
		}

		if err := uc.reservationRepo.Reschedule(txCtx, res.ID, newDate, req.NewTime); err != nil {
			uc.logger.Error("RescheduleReservation: failed to reschedule reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		updated, err := uc.reservationRepo.GetByID(txCtx, res.ID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to reload reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: reservation id=%d moved to %s %s",
		result.ID, result.ReservationDate.Format(domain.DateFormat), result.ReservationTime)

	return fromDomain(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if req.NewTime.IsZero() {
		return fmt.Errorf("%w: newTime is required", ErrInvalidInput)
	}
	if err := req.NewTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateSlot проверяет целевую дату и метку против сетки расписания
func validateSlot(pkg *domain.CheckupPackage, date time.Time, startTime types.TimeString, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	slots := domain.SlotsFor(pkg, date)
	if len(slots) == 0 {
		return ErrClosedDay
	}

	for _, slot := range slots {
		if slot == startTime {
			return nil
		}
	}

	return ErrInvalidTimeSlot
}

// countInCell подсчитывает активные бронирования в точной ячейке,
// исключая переносимое бронирование
func countInCell(reservations []*domain.Reservation, startTime types.TimeString, excludeID int64) int {
	count := 0
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.IsActive() {
			continue
		}
		if res.ReservationTime == startTime {
			count++
		}
	}
	return count
}
