package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	paymentRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/internal/integrations/payprovider"
	"github.com/avdeew/HCC-ReservationService/internal/service/payments/models"
)

// Service сервис для работы с платежами
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	provider        PaymentProvider
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	provider PaymentProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		provider:        provider,
		txManager:       txManager,
		logger:          logger,
	}
}

// Prepare создает платёж в статусе ready для бронирования
//
// OrderId генерируется как uuid и уходит в платёжное окно провайдера;
// коллизия уникальности невидима для клиента, orderId перегенерируется
func (s *Service) Prepare(ctx context.Context, req *models.PreparePaymentRequest) (*models.PreparePaymentResponse, error) {
	s.logger.Info("Prepare: preparing payment for reservation id=%d, user=%d", req.ReservationID, req.UserID)

	if err := validatePrepareRequest(req); err != nil {
		s.logger.Warn("Prepare: validation failed: %v", err)
		return nil, err
	}

	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Prepare: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Prepare: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Prepare - repository error: %v", ErrInternal, err)
	}

	if res.UserID != req.UserID {
		s.logger.Warn("Prepare: access denied for user=%d to reservation id=%d", req.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if res.Status != domain.StatusPending {
		s.logger.Warn("Prepare: reservation id=%d has status %s, not awaiting payment", res.ID, res.Status)
		return nil, ErrNotAwaitingPayment
	}

	if res.FinalAmount == 0 {
		s.logger.Warn("Prepare: reservation id=%d is free, nothing to pay", res.ID)
		return nil, ErrNothingToPay
	}

	payment, err := s.createWithOrderIDRetry(ctx, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Prepare: created payment id=%d, orderID=%s, amount=%d", payment.ID, payment.OrderID, payment.Amount)
	return models.FromDomainPayment(payment), nil
}

// Cancel исполняет полный или частичный возврат платежа
//
// Возврат всей оставшейся суммы переводит платёж в cancelled,
// частичный — в partial_cancelled. Статус бронирования не меняется:
// возврат денег и судьба визита — независимые решения администратора
func (s *Service) Cancel(ctx context.Context, paymentKey string, req *models.CancelPaymentRequest) (*models.CancelPaymentResponse, error) {
	s.logger.Info("Cancel: cancelling payment key=%s, amount=%v", paymentKey, req.Amount)

	if paymentKey == "" {
		return nil, fmt.Errorf("%w: paymentKey is required", ErrInvalidInput)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.GetByPaymentKey(ctx, paymentKey)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Cancel: payment key=%s not found", paymentKey)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Cancel: repository error for payment key=%s: %v", paymentKey, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !payment.CanBeCancelled() {
		s.logger.Warn("Cancel: payment id=%d has status %s, cannot cancel", payment.ID, payment.Status)
		return nil, ErrCannotCancel
	}

	remaining := payment.RemainingAmount()

	cancelAmount := remaining
	if req.Amount != nil {
		cancelAmount = *req.Amount
	}
	if cancelAmount <= 0 || cancelAmount > remaining {
		s.logger.Warn("Cancel: invalid cancel amount %d for payment id=%d, remaining=%d",
			cancelAmount, payment.ID, remaining)
		return nil, ErrInvalidCancelAmount
	}

	// Провайдер трактует отсутствие суммы как возврат остатка
	var providerAmount *int64
	if cancelAmount != remaining {
		providerAmount = &cancelAmount
	}

	if _, err := s.provider.Cancel(ctx, paymentKey, req.Reason, providerAmount); err != nil {
		if errors.Is(err, payprovider.ErrCancelRejected) {
			s.logger.Warn("Cancel: provider rejected cancel for payment id=%d: %v", payment.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrCancelRejected, err)
		}
		s.logger.Error("Cancel: provider call failed for payment id=%d: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: provider call failed: %v", ErrInternal, err)
	}

	newStatus := domain.PaymentStatusPartialCancelled
	if cancelAmount == remaining {
		newStatus = domain.PaymentStatusCancelled
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.paymentRepo.AppendCancel(txCtx, payment.ID, cancelAmount, req.Reason); err != nil {
			return fmt.Errorf("%w: failed to append cancel record: %v", ErrInternal, err)
		}
		if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, newStatus); err != nil {
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: failed to record cancel for payment id=%d: %v", payment.ID, err)
		return nil, err
	}

	s.logger.Info("Cancel: payment id=%d cancelled amount=%d, status=%s", payment.ID, cancelAmount, newStatus)

	return &models.CancelPaymentResponse{
		PaymentID:       payment.ID,
		PaymentKey:      paymentKey,
		Status:          string(newStatus),
		CancelledAmount: cancelAmount,
		RemainingAmount: remaining - cancelAmount,
	}, nil
}

// createWithOrderIDRetry создает платёж, перегенерируя orderId при коллизии
func (s *Service) createWithOrderIDRetry(ctx context.Context, res *domain.Reservation) (*domain.Payment, error) {
	for attempt := 0; attempt < domain.MaxNumberGenAttempts; attempt++ {
		payment := &domain.Payment{
			ReservationID: res.ID,
			OrderID:       uuid.NewString(),
			Amount:        res.FinalAmount,
			Status:        domain.PaymentStatusReady,
		}

		created, err := s.paymentRepo.Create(ctx, payment)
		if err == nil {
			return created, nil
		}

		if errors.Is(err, paymentRepo.ErrDuplicateOrderID) {
			s.logger.Warn("Prepare: orderID collision on %s, retrying (%d/%d)",
				payment.OrderID, attempt+1, domain.MaxNumberGenAttempts)
			continue
		}

		s.logger.Error("Prepare: failed to create payment: %v", err)
		return nil, fmt.Errorf("%w: Prepare - repository error: %v", ErrInternal, err)
	}

	return nil, ErrOrderIDGeneration
}

// validatePrepareRequest валидирует запрос подготовки платежа
func validatePrepareRequest(req *models.PreparePaymentRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}
	return nil
}
