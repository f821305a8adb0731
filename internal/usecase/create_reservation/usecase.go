package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	packageRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/checkuppackage"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
//
// Проверка допуска (блокировка ячейки + вместимость) и вставка выполняются
// в одной сериализуемой транзакции: два конкурентных запроса за последнее
// место не могут пройти оба. Строки дня блокируются FOR UPDATE репозиторием.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, package=%d, date=%s, time=%s",
		req.UserID, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 2. Получаем пакет обследования
	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateReservation: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateReservation: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Проверяем дату и метку времени против сетки расписания
	if err := validateSlot(pkg, date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateReservation: slot validation failed: %v", err)
		return nil, err
	}

	// 4. Вычисляем суммы из каталога
	totalAmount := pkg.Price
	discountAmount := pkg.DiscountAmount()
	finalAmount := pkg.FinalAmount()

	// 5. Определяем начальный статус: бесплатные пакеты и административное
	// создание подтверждаются сразу, остальные ждут оплаты
	initialStatus := domain.StatusPending
	if finalAmount == 0 || req.ForceConfirm {
		initialStatus = domain.StatusConfirmed
	}

	// 6. Проверка допуска и вставка в одной сериализуемой транзакции.
	// Коллизия уникального номера откатывает транзакцию целиком: после
	// нарушения ограничения PostgreSQL не принимает команды до ROLLBACK,
	// поэтому перегенерация номера перезапускает транзакцию вместе с
	// проверкой допуска. Коллизия невидима для клиента, наружу уходит
	// только исчерпание попыток.
	for attempt := 0; attempt < domain.MaxNumberGenAttempts; attempt++ {
		number, err := domain.GenerateReservationNumber(date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to generate number: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		res := &domain.Reservation{
			Number:          number,
			UserID:          req.UserID,
			PackageID:       pkg.ID,
			ReservationDate: date,
			ReservationTime: req.StartTime,
			Status:          initialStatus,
			Patient:         req.Patient,
			TotalAmount:     totalAmount,
			DiscountAmount:  discountAmount,
			FinalAmount:     finalAmount,
			Note:            req.Note,
		}

		var result *domain.Reservation
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			created, err := uc.admitAndInsert(txCtx, pkg, res)
			if err != nil {
				return err
			}
			result = created
			return nil
		})

		if err == nil {
			uc.logger.Info("CreateReservation: successfully created reservation id=%d, number=%s, status=%s",
				result.ID, result.Number, result.Status)
			return fromDomain(result), nil
		}

		if errors.Is(err, reservationRepo.ErrDuplicateNumber) {
			uc.logger.Warn("CreateReservation: number collision on %s, retrying (%d/%d)",
				number, attempt+1, domain.MaxNumberGenAttempts)
			continue
		}

		return nil, err
	}

	uc.logger.Error("CreateReservation: number generation attempts exhausted")
	return nil, ErrNumberGeneration
}

// admitAndInsert проверяет допуск ячейки и вставляет бронирование.
// Выполняется внутри сериализуемой транзакции: строки дня блокируются
// FOR UPDATE репозиторием.
func (uc *UseCase) admitAndInsert(ctx context.Context, pkg *domain.CheckupPackage, res *domain.Reservation) (*domain.Reservation, error) {
	// Блокировки проверяются раньше вместимости: закрытая ячейка
	// недоступна независимо от фактической занятости
	blocks, err := uc.blockedSlotRepo.ListByDate(ctx, res.ReservationDate)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	if domain.IsCellBlocked(blocks, pkg.ID, res.ReservationDate, res.ReservationTime) {
		uc.logger.Warn("CreateReservation: slot blocked, package=%d, date=%s, time=%s",
			pkg.ID, res.ReservationDate.Format(domain.DateFormat), res.ReservationTime)
		return nil, ErrSlotBlocked
	}

	// Активные бронирования дня с блокировкой строк (FOR UPDATE)
	active, err := uc.reservationRepo.ListActiveByPackageAndDate(ctx, pkg.ID, res.ReservationDate)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list active reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list active reservations: %v", ErrInternal, err)
	}

	// Подсчёт занятости точной ячейки
	occupied := countInCell(active, res.ReservationTime, 0)
	if occupied >= pkg.MaxReservationsPerSlot {
		uc.logger.Warn("CreateReservation: slot full, %d/%d places taken",
			occupied, pkg.MaxReservationsPerSlot)
		return nil, ErrSlotFull
	}

	uc.logger.Info("CreateReservation: slot available, %d/%d places taken",
		occupied, pkg.MaxReservationsPerSlot)

	created, err := uc.reservationRepo.Create(ctx, res)
	if err != nil {
		// Коллизия номера пробрасывается как есть: внешний цикл
		// перегенерирует номер и перезапустит транзакцию
		if errors.Is(err, reservationRepo.ErrDuplicateNumber) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	return created, nil
}
