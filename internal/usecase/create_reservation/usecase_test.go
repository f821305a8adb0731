package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

type reservationRepoMock struct {
	createFn     func(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	listActiveFn func(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error)
}

func (m *reservationRepoMock) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	return m.createFn(ctx, res)
}

func (m *reservationRepoMock) ListActiveByPackageAndDate(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error) {
	return m.listActiveFn(ctx, packageID, date)
}

type packageRepoMock struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.CheckupPackage, error)
}

func (m *packageRepoMock) GetByID(ctx context.Context, id int64) (*domain.CheckupPackage, error) {
	return m.getByIDFn(ctx, id)
}

type blockedSlotRepoMock struct {
	listByDateFn func(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

func (m *blockedSlotRepoMock) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	return m.listByDateFn(ctx, date)
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func testPackage() *domain.CheckupPackage {
	return &domain.CheckupPackage{
		ID:                     1,
		Name:                   "Базовый чекап",
		Price:                  150000,
		MaxReservationsPerSlot: 2,
		AvailableDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    10,
		PackageID: 1,
		Date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime: "09:30",
		Patient: domain.PatientInfo{
			Name:      "Иванов Иван",
			Phone:     "+7-900-000-00-00",
			BirthDate: time.Date(1985, 5, 20, 0, 0, 0, 0, time.UTC),
			Gender:    "male",
		},
	}
}

func newTestUseCase(
	resRepo *reservationRepoMock,
	pkgRepo *packageRepoMock,
	blockRepo *blockedSlotRepoMock,
) *UseCase {
	uc := NewUseCase(resRepo, pkgRepo, blockRepo, &txManagerMock{}, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func activeReservation(id int64, slot types.TimeString, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		PackageID:       1,
		ReservationDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		ReservationTime: slot,
		Status:          status,
	}
}

func TestCreateReservation_Success(t *testing.T) {
	var inserted *domain.Reservation

	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			inserted = res
			created := *res
			created.ID = 100
			return &created, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{activeReservation(1, "09:30", domain.StatusConfirmed)}, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(150000), resp.TotalAmount)
	assert.Equal(t, int64(0), resp.DiscountAmount)
	assert.Equal(t, int64(150000), resp.FinalAmount)

	require.NotNil(t, inserted)
	assert.Regexp(t, `^HC20260316-`, inserted.Number)
	assert.Equal(t, domain.StatusPending, inserted.Status)
}

func TestCreateReservation_SlotFull(t *testing.T) {
	// Вместимость 2, обе позиции заняты активными бронированиями
	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, _ *domain.Reservation) (*domain.Reservation, error) {
			t.Fatal("create must not be called for a full slot")
			return nil, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				activeReservation(1, "09:30", domain.StatusPending),
				activeReservation(2, "09:30", domain.StatusConfirmed),
			}, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestCreateReservation_InactiveDoNotOccupy(t *testing.T) {
	// Отменённые и неявки не занимают вместимость
	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			created := *res
			created.ID = 101
			return &created, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				activeReservation(1, "09:30", domain.StatusCancelled),
				activeReservation(2, "09:30", domain.StatusNoShow),
				activeReservation(3, "09:30", domain.StatusConfirmed),
			}, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
}

func TestCreateReservation_SlotBlocked(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		scope domain.BlockScope
	}{
		{"wildcard block", domain.ScopeAllPackages()},
		{"package-scoped block", domain.ScopePackage(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := &reservationRepoMock{
				listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
					t.Fatal("capacity must not be checked for a blocked slot")
					return nil, nil
				},
			}
			pkgRepo := &packageRepoMock{
				getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
					return testPackage(), nil
				},
			}
			blockRepo := &blockedSlotRepoMock{
				listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
					return []*domain.BlockedSlot{
						{ID: 1, Date: date, Time: "09:30", Scope: tt.scope},
					}, nil
				},
			}

			uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrSlotBlocked)
		})
	}
}

func TestCreateReservation_BlockForOtherPackageIgnored(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			created := *res
			created.ID = 102
			return &created, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return []*domain.BlockedSlot{
				{ID: 1, Date: date, Time: "09:30", Scope: domain.ScopePackage(99)},
			}, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestCreateReservation_FreePackageAutoConfirmed(t *testing.T) {
	free := testPackage()
	free.DiscountPrice = new(int64) // акционная цена 0 — пакет бесплатный

	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			created := *res
			created.ID = 103
			return &created, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return free, nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(0), resp.FinalAmount)
	assert.Equal(t, int64(150000), resp.DiscountAmount)
}

func TestCreateReservation_SlotValidation(t *testing.T) {
	resRepo := &reservationRepoMock{}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("sunday closure", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrClosedDay)
	})

	t.Run("lunch break slot", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "12:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("off-grid slot", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "09:15"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})
}

func TestCreateReservation_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&reservationRepoMock{}, &packageRepoMock{}, &blockedSlotRepoMock{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"zero package", func(req *Request) { req.PackageID = 0 }},
		{"empty date", func(req *Request) { req.Date = time.Time{} }},
		{"empty time", func(req *Request) { req.StartTime = "" }},
		{"malformed time", func(req *Request) { req.StartTime = "9am" }},
		{"empty patient name", func(req *Request) { req.Patient.Name = "" }},
		{"empty patient phone", func(req *Request) { req.Patient.Phone = "" }},
		{"unknown gender", func(req *Request) { req.Patient.Gender = "other" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateReservation_NumberCollisionRetried(t *testing.T) {
	// Нарушение уникальности обрывает транзакцию PostgreSQL, продолжать
	// в ней нельзя: каждая перегенерация номера обязана идти в новой
	// транзакции с повторной проверкой допуска
	attempts := 0
	admissionChecks := 0
	numbers := make(map[string]struct{})

	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			attempts++
			numbers[res.Number] = struct{}{}
			if attempts < 3 {
				return nil, reservationRepo.ErrDuplicateNumber
			}
			created := *res
			created.ID = 104
			return &created, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			admissionChecks++
			return nil, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	txManager := &txManagerMock{}
	uc := NewUseCase(resRepo, pkgRepo, blockRepo, txManager, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(104), resp.ID)
	assert.Equal(t, 3, attempts)
	// Каждая попытка идёт со свежим номером в собственной транзакции
	assert.Len(t, numbers, 3)
	assert.Equal(t, 3, txManager.calls)
	assert.Equal(t, 3, admissionChecks)
}

func TestCreateReservation_NoInsertRetryInsideAbortedTx(t *testing.T) {
	// После коллизии повторная вставка в той же транзакции невозможна —
	// следующая попытка обязана прийти в новом DoSerializable
	inserts := 0
	txManager := &txManagerMock{}

	resRepo := &reservationRepoMock{}
	resRepo.createFn = func(_ context.Context, _ *domain.Reservation) (*domain.Reservation, error) {
		inserts++
		require.Equal(t, txManager.calls, inserts, "insert retried inside the same transaction")
		return nil, reservationRepo.ErrDuplicateNumber
	}
	resRepo.listActiveFn = func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
		return nil, nil
	}

	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := NewUseCase(resRepo, pkgRepo, blockRepo, txManager, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNumberGeneration)
	assert.Equal(t, domain.MaxNumberGenAttempts, txManager.calls)
	assert.Equal(t, domain.MaxNumberGenAttempts, inserts)
}

func TestCreateReservation_NumberGenerationExhausted(t *testing.T) {
	resRepo := &reservationRepoMock{
		createFn: func(_ context.Context, _ *domain.Reservation) (*domain.Reservation, error) {
			return nil, reservationRepo.ErrDuplicateNumber
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	pkgRepo := &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}

	uc := newTestUseCase(resRepo, pkgRepo, blockRepo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNumberGeneration)
}
