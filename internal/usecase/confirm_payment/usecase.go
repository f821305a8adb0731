package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	paymentRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/internal/integrations/payprovider"
)

// UseCase use case для подтверждения платежа
type UseCase struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	provider        PaymentProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	provider PaymentProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		provider:        provider,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения платежа
//
// Сумма сверяется до обращения к провайдеру: расхождение означает
// подмену данных на клиенте, такой запрос отклоняется локально.
// Провайдер вызывается вне транзакции; запись результата (платёж paid,
// бронирование confirmed) атомарна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: user=%d, orderID=%s, amount=%d", req.UserID, req.OrderID, req.Amount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	payment, err := uc.paymentRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("ConfirmPayment: payment orderID=%s not found", req.OrderID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get payment orderID=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	res, err := uc.reservationRepo.GetByID(ctx, payment.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("ConfirmPayment: reservation id=%d missing for payment id=%d",
				payment.ReservationID, payment.ID)
			return nil, fmt.Errorf("%w: reservation id=%d not found", ErrInternal, payment.ReservationID)
		}
		uc.logger.Error("ConfirmPayment: failed to get reservation id=%d: %v", payment.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// Чужой orderId неотличим от несуществующего
	if res.UserID != req.UserID {
		uc.logger.Warn("ConfirmPayment: user=%d does not own reservation id=%d", req.UserID, res.ID)
		return nil, ErrPaymentNotFound
	}

	if !payment.CanBeConfirmed() {
		uc.logger.Warn("ConfirmPayment: payment id=%d has status %s, cannot confirm", payment.ID, payment.Status)
		return nil, ErrPaymentNotReady
	}

	if req.Amount != payment.Amount {
		uc.logger.Warn("ConfirmPayment: amount mismatch for orderID=%s: got %d, expected %d",
			req.OrderID, req.Amount, payment.Amount)
		return nil, ErrAmountMismatch
	}

	if !res.CanBeConfirmed() {
		uc.logger.Warn("ConfirmPayment: reservation id=%d has status %s, not awaiting payment", res.ID, res.Status)
		return nil, ErrReservationNotPending
	}

	provResp, err := uc.provider.Confirm(ctx, req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		if errors.Is(err, payprovider.ErrPaymentRejected) {
			uc.logger.Warn("ConfirmPayment: provider rejected orderID=%s: %v", req.OrderID, err)
			if failErr := uc.paymentRepo.MarkFailed(ctx, payment.ID, err.Error()); failErr != nil {
				uc.logger.Error("ConfirmPayment: failed to mark payment id=%d failed: %v", payment.ID, failErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrPaymentRejected, err)
		}
		uc.logger.Error("ConfirmPayment: provider call failed for orderID=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: provider call failed: %v", ErrInternal, err)
	}

	paidAt := uc.paidAt(provResp.ApprovedAt)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.paymentRepo.MarkPaid(txCtx, payment.ID, req.PaymentKey, paidAt); err != nil {
			return fmt.Errorf("%w: failed to mark payment paid: %v", ErrInternal, err)
		}
		if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.StatusConfirmed, nil); err != nil {
			return fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
		}
		if err := uc.reservationRepo.SetPaymentID(txCtx, res.ID, payment.ID); err != nil {
			return fmt.Errorf("%w: failed to link payment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to record confirmation for orderID=%s: %v", req.OrderID, err)
		return nil, err
	}

	payment.Status = domain.PaymentStatusPaid
	payment.PaymentKey = &req.PaymentKey
	payment.PaidAt = &paidAt

	uc.logger.Info("ConfirmPayment: payment id=%d confirmed, reservation id=%d confirmed", payment.ID, res.ID)

	return fromDomain(payment, domain.StatusConfirmed), nil
}

// paidAt парсит время одобрения провайдера, при неудаче берёт текущее
func (uc *UseCase) paidAt(approvedAt string) time.Time {
	if approvedAt != "" {
		if t, err := time.Parse(time.RFC3339, approvedAt); err == nil {
			return t
		}
		uc.logger.Warn("ConfirmPayment: unparsable approvedAt %q from provider", approvedAt)
	}
	return uc.timeProvider.Now()
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.PaymentKey == "" {
		return fmt.Errorf("%w: paymentKey is required", ErrInvalidInput)
	}
	if req.OrderID == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}
