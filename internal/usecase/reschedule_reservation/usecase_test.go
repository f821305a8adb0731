package reschedule_reservation

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
	getByIDFn    func(ctx context.Context, id int64) (*domain.Reservation, error)
	listActiveFn func(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error)
	rescheduleFn func(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error
}

func (m *reservationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *reservationRepoMock) ListActiveByPackageAndDate(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error) {
	return m.listActiveFn(ctx, packageID, date)
}

func (m *reservationRepoMock) Reschedule(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error {
	return m.rescheduleFn(ctx, id, newDate, newTime)
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

type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

var (
	oldDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник
	newDate = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC) // вторник
)

func testPackage() *domain.CheckupPackage {
	return &domain.CheckupPackage{
		ID:                     1,
		Price:                  150000,
		MaxReservationsPerSlot: 1,
		AvailableDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

func testReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              50,
		Number:          "HC20260316-X7K2QF",
		UserID:          10,
		PackageID:       1,
		ReservationDate: oldDate,
		ReservationTime: "09:30",
		Status:          status,
		Patient: domain.PatientInfo{
			Name:   "Иванов Иван",
			Phone:  "+7-900-000-00-00",
			Gender: "male",
		},
		TotalAmount: 150000,
		FinalAmount: 150000,
	}
}

func newTestUseCase(resRepo *reservationRepoMock, pkgRepo *packageRepoMock, blockRepo *blockedSlotRepoMock) *UseCase {
	uc := NewUseCase(resRepo, pkgRepo, blockRepo, &txManagerMock{}, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func emptyBlockRepo() *blockedSlotRepoMock {
	return &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return nil, nil
		},
	}
}

func defaultPkgRepo() *packageRepoMock {
	return &packageRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.CheckupPackage, error) {
			return testPackage(), nil
		},
	}
}

func TestReschedule_Success(t *testing.T) {
	moved := false
	res := testReservation(domain.StatusConfirmed)

	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, id int64) (*domain.Reservation, error) {
			if moved {
				updated := *res
				updated.ReservationDate = newDate
				updated.ReservationTime = "10:00"
				return &updated, nil
			}
			return res, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
		rescheduleFn: func(_ context.Context, id int64, date time.Time, slot types.TimeString) error {
			assert.Equal(t, int64(50), id)
			assert.Equal(t, newDate, date)
			assert.Equal(t, types.TimeString("10:00"), slot)
			moved = true
			return nil
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		NewDate:       newDate,
		NewTime:       "10:00",
	})
	require.NoError(t, err)

	// Идентичность сохраняется: номер, пациент и суммы не меняются
	assert.Equal(t, "HC20260316-X7K2QF", resp.Number)
	assert.Equal(t, "Иванов Иван", resp.Patient.Name)
	assert.Equal(t, int64(150000), resp.FinalAmount)
	assert.Equal(t, newDate, resp.ReservationDate)
	assert.Equal(t, types.TimeString("10:00"), resp.ReservationTime)
}

func TestReschedule_SameCellExcludesSelf(t *testing.T) {
	// Вместимость 1, единственное активное бронирование в ячейке — само
	// переносимое. Перенос внутри той же ячейки должен пройти.
	res := testReservation(domain.StatusConfirmed)

	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return res, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{res}, nil
		},
		rescheduleFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) error {
			return nil
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		NewDate:       oldDate,
		NewTime:       "09:30",
	})
	assert.NoError(t, err)
}

func TestReschedule_TargetSlotFull(t *testing.T) {
	res := testReservation(domain.StatusPending)
	other := testReservation(domain.StatusConfirmed)
	other.ID = 51
	other.ReservationDate = newDate
	other.ReservationTime = "10:00"

	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return res, nil
		},
		listActiveFn: func(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{other}, nil
		},
		rescheduleFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) error {
			t.Fatal("reschedule must not be called for a full target slot")
			return nil
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		NewDate:       newDate,
		NewTime:       "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestReschedule_TargetSlotBlocked(t *testing.T) {
	res := testReservation(domain.StatusConfirmed)

	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return res, nil
		},
	}
	blockRepo := &blockedSlotRepoMock{
		listByDateFn: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return []*domain.BlockedSlot{
				{ID: 1, Date: newDate, Time: "10:00", Scope: domain.ScopeAllPackages()},
			}, nil
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), blockRepo)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		NewDate:       newDate,
		NewTime:       "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestReschedule_NotReschedulable(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			resRepo := &reservationRepoMock{
				getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
					return testReservation(status), nil
				},
			}

			uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

			_, err := uc.Execute(context.Background(), &Request{
				ReservationID: 50,
				NewDate:       newDate,
				NewTime:       "10:00",
			})
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestReschedule_NotFound(t *testing.T) {
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return nil, reservationRepo.ErrReservationNotFound
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 404,
		NewDate:       newDate,
		NewTime:       "10:00",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReschedule_TargetValidation(t *testing.T) {
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(domain.StatusConfirmed), nil
		},
	}

	uc := newTestUseCase(resRepo, defaultPkgRepo(), emptyBlockRepo())

	t.Run("past date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 50,
			NewDate:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			NewTime:       "10:00",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("sunday closure", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 50,
			NewDate:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			NewTime:       "10:00",
		})
		assert.ErrorIs(t, err, ErrClosedDay)
	})

	t.Run("off-grid time", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 50,
			NewDate:       newDate,
			NewTime:       "12:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})
}
