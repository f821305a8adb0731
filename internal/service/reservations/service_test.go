package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/internal/service/reservations/models"
)

type repoMock struct {
	getByIDFn        func(ctx context.Context, id int64) (*domain.Reservation, error)
	getByUserIDFn    func(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	listWithFilterFn func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	updateStatusFn   func(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error
	cancelFn         func(ctx context.Context, id int64, reason string, refundAmount int64) error
	deleteFn         func(ctx context.Context, id int64) error
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *repoMock) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return m.getByUserIDFn(ctx, userID, status)
}

func (m *repoMock) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return m.listWithFilterFn(ctx, filter)
}

func (m *repoMock) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error {
	return m.updateStatusFn(ctx, id, status, adminMemo)
}

func (m *repoMock) Cancel(ctx context.Context, id int64, reason string, refundAmount int64) error {
	return m.cancelFn(ctx, id, reason, refundAmount)
}

func (m *repoMock) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func testReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              50,
		Number:          "HC20260316-X7K2QF",
		UserID:          10,
		PackageID:       1,
		ReservationDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
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

func newTestService(repo *repoMock, now time.Time) *Service {
	svc := NewService(repo, &nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	repo := &repoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(domain.StatusConfirmed), nil
		},
	}
	svc := newTestService(repo, time.Now())

	resp, err := svc.GetByID(context.Background(), 50, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.ID)
	assert.Equal(t, "HC20260316-X7K2QF", resp.Number)

	_, err = svc.GetByID(context.Background(), 50, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &repoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return nil, reservationRepo.ErrReservationNotFound
		},
	}
	svc := newTestService(repo, time.Now())

	_, err := svc.GetByID(context.Background(), 404, 10)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations(t *testing.T) {
	var gotStatus *domain.ReservationStatus

	repo := &repoMock{
		getByUserIDFn: func(_ context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
			gotStatus = status
			return []*domain.Reservation{testReservation(domain.StatusConfirmed)}, nil
		},
	}
	svc := newTestService(repo, time.Now())

	t.Run("without status filter", func(t *testing.T) {
		resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 10})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
		assert.Nil(t, gotStatus)
	})

	t.Run("with status filter", func(t *testing.T) {
		status := "confirmed"
		_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID: 10,
			Status: &status,
		})
		require.NoError(t, err)
		require.NotNil(t, gotStatus)
		assert.Equal(t, domain.StatusConfirmed, *gotStatus)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := "refunded"
		_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID: 10,
			Status: &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel_RefundTiers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		reservationDate time.Time
		wantRefund      int64
	}{
		{"same day no refund", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"one day before 50%", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), 75000},
		{"three days before 80%", time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), 120000},
		{"week before 100%", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRefund int64

			res := testReservation(domain.StatusConfirmed)
			res.ReservationDate = tt.reservationDate

			repo := &repoMock{
				getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
					return res, nil
				},
				cancelFn: func(_ context.Context, _ int64, reason string, refundAmount int64) error {
					gotRefund = refundAmount
					assert.Equal(t, "изменились планы", reason)
					return nil
				},
			}
			svc := newTestService(repo, now)

			resp, err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
				UserID: 10,
				Reason: "изменились планы",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRefund, gotRefund)
			assert.Equal(t, tt.wantRefund, resp.RefundAmount)
			assert.Equal(t, "cancelled", resp.Status)
		})
	}
}

func TestCancel_RefundRoundsDown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	res := testReservation(domain.StatusPending)
	res.FinalAmount = 99
	res.ReservationDate = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	repo := &repoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return res, nil
		},
		cancelFn: func(_ context.Context, _ int64, _ string, refundAmount int64) error {
			assert.Equal(t, int64(49), refundAmount)
			return nil
		},
	}
	svc := newTestService(repo, now)

	resp, err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{UserID: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(49), resp.RefundAmount)
}

func TestCancel_Guards(t *testing.T) {
	t.Run("foreign reservation", func(t *testing.T) {
		repo := &repoMock{
			getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
				return testReservation(domain.StatusConfirmed), nil
			},
		}
		svc := newTestService(repo, time.Now())

		_, err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{UserID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	for _, status := range []domain.ReservationStatus{
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		t.Run("status "+string(status), func(t *testing.T) {
			repo := &repoMock{
				getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
					return testReservation(status), nil
				},
			}
			svc := newTestService(repo, time.Now())

			_, err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{UserID: 10})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	memo := "неявка подтверждена по телефону"
	var gotStatus domain.ReservationStatus
	var gotMemo *string

	repo := &repoMock{
		updateStatusFn: func(_ context.Context, _ int64, status domain.ReservationStatus, adminMemo *string) error {
			gotStatus = status
			gotMemo = adminMemo
			return nil
		},
	}
	svc := newTestService(repo, time.Now())

	err := svc.UpdateStatus(context.Background(), 50, &models.UpdateStatusRequest{
		Status:    "no_show",
		AdminMemo: &memo,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, gotStatus)
	require.NotNil(t, gotMemo)
	assert.Equal(t, memo, *gotMemo)

	err = svc.UpdateStatus(context.Background(), 50, &models.UpdateStatusRequest{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CancelGoesThroughCancellationPath(t *testing.T) {
	// Административный перевод в cancelled обязан оставить те же отметки,
	// что и отмена владельцем: время, причину и сумму возврата
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	memo := "клиент попросил по телефону"

	t.Run("refund and memo stamped", func(t *testing.T) {
		var gotReason string
		var gotRefund int64

		res := testReservation(domain.StatusConfirmed)
		res.ReservationDate = time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

		repo := &repoMock{
			getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
				return res, nil
			},
			cancelFn: func(_ context.Context, id int64, reason string, refundAmount int64) error {
				assert.Equal(t, int64(50), id)
				gotReason = reason
				gotRefund = refundAmount
				return nil
			},
			updateStatusFn: func(_ context.Context, _ int64, _ domain.ReservationStatus, _ *string) error {
				t.Fatal("plain status update must not be used for cancellation")
				return nil
			},
		}
		svc := newTestService(repo, now)

		err := svc.UpdateStatus(context.Background(), 50, &models.UpdateStatusRequest{
			Status:    "cancelled",
			AdminMemo: &memo,
		})
		require.NoError(t, err)

		// Три дня до визита — ступень 80%
		assert.Equal(t, int64(120000), gotRefund)
		assert.Equal(t, memo, gotReason)
	})

	t.Run("default reason without memo", func(t *testing.T) {
		var gotReason string

		repo := &repoMock{
			getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
				return testReservation(domain.StatusPending), nil
			},
			cancelFn: func(_ context.Context, _ int64, reason string, _ int64) error {
				gotReason = reason
				return nil
			},
		}
		svc := newTestService(repo, now)

		err := svc.UpdateStatus(context.Background(), 50, &models.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.NotEmpty(t, gotReason)
	})

	t.Run("already cancelled is a no-op", func(t *testing.T) {
		repo := &repoMock{
			getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
				return testReservation(domain.StatusCancelled), nil
			},
			cancelFn: func(_ context.Context, _ int64, _ string, _ int64) error {
				t.Fatal("cancelled reservation must not be cancelled twice")
				return nil
			},
		}
		svc := newTestService(repo, now)

		assert.NoError(t, svc.UpdateStatus(context.Background(), 50, &models.UpdateStatusRequest{Status: "cancelled"}))
	})
}

func TestDelete_OnlyCancelled(t *testing.T) {
	t.Run("cancelled is deletable", func(t *testing.T) {
		deleted := false
		repo := &repoMock{
			getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
				return testReservation(domain.StatusCancelled), nil
			},
			deleteFn: func(_ context.Context, id int64) error {
				deleted = true
				assert.Equal(t, int64(50), id)
				return nil
			},
		}
		svc := newTestService(repo, time.Now())

		require.NoError(t, svc.Delete(context.Background(), 50))
		assert.True(t, deleted)
	})

	for _, status := range []domain.ReservationStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusNoShow,
	} {
		t.Run("status "+string(status), func(t *testing.T) {
			repo := &repoMock{
				getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
					return testReservation(status), nil
				},
				deleteFn: func(_ context.Context, _ int64) error {
					t.Fatal("delete must not be called")
					return nil
				},
			}
			svc := newTestService(repo, time.Now())

			assert.ErrorIs(t, svc.Delete(context.Background(), 50), ErrCannotDelete)
		})
	}
}

func TestListWithFilter(t *testing.T) {
	var gotFilter domain.ReservationsFilter

	repo := &repoMock{
		listWithFilterFn: func(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
			gotFilter = filter
			return []*domain.Reservation{testReservation(domain.StatusConfirmed)}, nil
		},
	}
	svc := newTestService(repo, time.Now())

	packageID := int64(1)
	status := "confirmed"
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	resp, err := svc.ListWithFilter(context.Background(), &models.ListReservationsRequest{
		PackageID:       &packageID,
		StartDate:       &start,
		EndDate:         &end,
		Status:          &status,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	require.NotNil(t, gotFilter.PackageID)
	assert.Equal(t, int64(1), *gotFilter.PackageID)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *gotFilter.Status)
	require.NotNil(t, gotFilter.StartDate)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), *gotFilter.StartDate)
	assert.True(t, gotFilter.IncludeInactive)
}
