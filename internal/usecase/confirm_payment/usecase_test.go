package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	paymentRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/payment"
	"github.com/avdeew/HCC-ReservationService/internal/integrations/payprovider"
)

type paymentRepoMock struct {
	getByOrderIDFn func(ctx context.Context, orderID string) (*domain.Payment, error)
	markPaidFn     func(ctx context.Context, id int64, paymentKey string, paidAt time.Time) error
	markFailedFn   func(ctx context.Context, id int64, reason string) error
}

func (m *paymentRepoMock) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return m.getByOrderIDFn(ctx, orderID)
}

func (m *paymentRepoMock) MarkPaid(ctx context.Context, id int64, paymentKey string, paidAt time.Time) error {
	return m.markPaidFn(ctx, id, paymentKey, paidAt)
}

func (m *paymentRepoMock) MarkFailed(ctx context.Context, id int64, reason string) error {
	return m.markFailedFn(ctx, id, reason)
}

type reservationRepoMock struct {
	getByIDFn      func(ctx context.Context, id int64) (*domain.Reservation, error)
	updateStatusFn func(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error
	setPaymentIDFn func(ctx context.Context, id int64, paymentID int64) error
}

func (m *reservationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *reservationRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error {
	return m.updateStatusFn(ctx, id, status, adminMemo)
}

func (m *reservationRepoMock) SetPaymentID(ctx context.Context, id int64, paymentID int64) error {
	return m.setPaymentIDFn(ctx, id, paymentID)
}

type providerMock struct {
	confirmFn func(ctx context.Context, paymentKey, orderID string, amount int64) (*payprovider.ConfirmResponse, error)
}

func (m *providerMock) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*payprovider.ConfirmResponse, error) {
	return m.confirmFn(ctx, paymentKey, orderID, amount)
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

func testPayment() *domain.Payment {
	return &domain.Payment{
		ID:            7,
		ReservationID: 50,
		OrderID:       "f3c1a2d4-0000-0000-0000-000000000001",
		Amount:        150000,
		Status:        domain.PaymentStatusReady,
	}
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          50,
		UserID:      10,
		PackageID:   1,
		Status:      domain.StatusPending,
		FinalAmount: 150000,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:     10,
		PaymentKey: "pay_key_abc",
		OrderID:    "f3c1a2d4-0000-0000-0000-000000000001",
		Amount:     150000,
	}
}

func TestConfirmPayment_Success(t *testing.T) {
	var markedPaid, statusUpdated, paymentLinked bool

	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
		markPaidFn: func(_ context.Context, id int64, paymentKey string, paidAt time.Time) error {
			markedPaid = true
			assert.Equal(t, int64(7), id)
			assert.Equal(t, "pay_key_abc", paymentKey)
			assert.Equal(t, time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC), paidAt)
			return nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
		updateStatusFn: func(_ context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error {
			statusUpdated = true
			assert.Equal(t, int64(50), id)
			assert.Equal(t, domain.StatusConfirmed, status)
			assert.Nil(t, adminMemo)
			return nil
		},
		setPaymentIDFn: func(_ context.Context, id int64, paymentID int64) error {
			paymentLinked = true
			assert.Equal(t, int64(50), id)
			assert.Equal(t, int64(7), paymentID)
			return nil
		},
	}
	provider := &providerMock{
		confirmFn: func(_ context.Context, paymentKey, orderID string, amount int64) (*payprovider.ConfirmResponse, error) {
			return &payprovider.ConfirmResponse{
				PaymentKey: paymentKey,
				OrderID:    orderID,
				Status:     "DONE",
				ApprovedAt: "2026-03-10T12:30:00Z",
			}, nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, provider, &txManagerMock{}, &nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, markedPaid)
	assert.True(t, statusUpdated)
	assert.True(t, paymentLinked)

	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, "confirmed", resp.ReservationStatus)
	require.NotNil(t, resp.PaidAt)
}

func TestConfirmPayment_AmountMismatch(t *testing.T) {
	// Сверка суммы идёт до обращения к провайдеру
	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
	}
	provider := &providerMock{
		confirmFn: func(_ context.Context, _, _ string, _ int64) (*payprovider.ConfirmResponse, error) {
			t.Fatal("provider must not be called on amount mismatch")
			return nil, nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, provider, &txManagerMock{}, &nopLogger{})

	req := validRequest()
	req.Amount = 100000

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestConfirmPayment_ForeignOrderLooksMissing(t *testing.T) {
	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, &providerMock{}, &txManagerMock{}, &nopLogger{})

	req := validRequest()
	req.UserID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestConfirmPayment_NotFound(t *testing.T) {
	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return nil, paymentRepo.ErrPaymentNotFound
		},
	}

	uc := NewUseCase(payRepo, &reservationRepoMock{}, &providerMock{}, &txManagerMock{}, &nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestConfirmPayment_AlreadyPaid(t *testing.T) {
	paid := testPayment()
	paid.Status = domain.PaymentStatusPaid

	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return paid, nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, &providerMock{}, &txManagerMock{}, &nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentNotReady)
}

func TestConfirmPayment_ReservationNotPending(t *testing.T) {
	confirmed := testReservation()
	confirmed.Status = domain.StatusConfirmed

	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return confirmed, nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, &providerMock{}, &txManagerMock{}, &nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationNotPending)
}

func TestConfirmPayment_ProviderRejected(t *testing.T) {
	var markedFailed bool

	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
		markPaidFn: func(_ context.Context, _ int64, _ string, _ time.Time) error {
			t.Fatal("payment must not be marked paid after rejection")
			return nil
		},
		markFailedFn: func(_ context.Context, id int64, reason string) error {
			markedFailed = true
			assert.Equal(t, int64(7), id)
			assert.NotEmpty(t, reason)
			return nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
	}
	provider := &providerMock{
		confirmFn: func(_ context.Context, _, _ string, _ int64) (*payprovider.ConfirmResponse, error) {
			return nil, payprovider.ErrPaymentRejected
		},
	}

	uc := NewUseCase(payRepo, resRepo, provider, &txManagerMock{}, &nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentRejected)
	assert.True(t, markedFailed)
}

func TestConfirmPayment_ProviderInfraError(t *testing.T) {
	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
		markFailedFn: func(_ context.Context, _ int64, _ string) error {
			t.Fatal("infra errors must not mark the payment failed")
			return nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
	}
	provider := &providerMock{
		confirmFn: func(_ context.Context, _, _ string, _ int64) (*payprovider.ConfirmResponse, error) {
			return nil, errors.New("connection refused")
		},
	}

	uc := NewUseCase(payRepo, resRepo, provider, &txManagerMock{}, &nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestConfirmPayment_UnparsableApprovedAtFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	var recordedPaidAt time.Time

	payRepo := &paymentRepoMock{
		getByOrderIDFn: func(_ context.Context, _ string) (*domain.Payment, error) {
			return testPayment(), nil
		},
		markPaidFn: func(_ context.Context, _ int64, _ string, paidAt time.Time) error {
			recordedPaidAt = paidAt
			return nil
		},
	}
	resRepo := &reservationRepoMock{
		getByIDFn: func(_ context.Context, _ int64) (*domain.Reservation, error) {
			return testReservation(), nil
		},
		updateStatusFn: func(_ context.Context, _ int64, _ domain.ReservationStatus, _ *string) error {
			return nil
		},
		setPaymentIDFn: func(_ context.Context, _ int64, _ int64) error {
			return nil
		},
	}
	provider := &providerMock{
		confirmFn: func(_ context.Context, _, _ string, _ int64) (*payprovider.ConfirmResponse, error) {
			return &payprovider.ConfirmResponse{Status: "DONE", ApprovedAt: "not-a-timestamp"}, nil
		},
	}

	uc := NewUseCase(payRepo, resRepo, provider, &txManagerMock{}, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, now, recordedPaidAt)
}

func TestConfirmPayment_InvalidInput(t *testing.T) {
	uc := NewUseCase(&paymentRepoMock{}, &reservationRepoMock{}, &providerMock{}, &txManagerMock{}, &nopLogger{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"empty payment key", func(req *Request) { req.PaymentKey = "" }},
		{"empty order id", func(req *Request) { req.OrderID = "" }},
		{"non-positive amount", func(req *Request) { req.Amount = 0 }},
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
