package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только собственное бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if res.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией
// Доступно только администраторам; отменённые и неявки скрыты,
// пока не запрошен IncludeInactive
//
// Примеры использования:
// - Все активные бронирования: ListWithFilter(ctx, &ListReservationsRequest{})
// - Бронирования пакета: указать PackageID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListWithFilter(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := "ListWithFilter: fetching reservations"
	if req.PackageID != nil {
		logMsg += fmt.Sprintf(", package=%d", *req.PackageID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListWithFilter: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListWithFilter: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWithFilter - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWithFilter: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование владельца с расчётом возврата
//
// Ступень возврата определяется числом полных дней до визита:
// меньше 1 дня — 0%, 1-2 дня — 50%, 3-6 дней — 80%, от 7 дней — 100%.
// Сумма возврата округляется вниз и фиксируется на бронировании;
// само движение денег выполняет вызывающая сторона через сервис платежей
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.CancelReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	res, err := s.getReservation(ctx, reservationID, "Cancel")
	if err != nil {
		return nil, err
	}

	if res.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return nil, ErrAccessDenied
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
		return nil, ErrCannotCancel
	}

	daysBefore := domain.DaysUntil(res.ReservationDate, s.timeProvider.Now())
	refundAmount := domain.RefundAmount(res.FinalAmount, daysBefore)

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.Reason, refundAmount); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d, daysBefore=%d, refund=%d",
		reservationID, daysBefore, refundAmount)

	return &models.CancelReservationResponse{
		ID:           reservationID,
		Status:       string(domain.StatusCancelled),
		RefundAmount: refundAmount,
	}, nil
}

// UpdateStatus переводит бронирование в любой известный статус
// Доступно только администраторам, переходы не ограничиваются
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", reservationID, req.Status)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Перевод в cancelled идёт через путь отмены: отменённое бронирование
	// несёт отметку времени, причину и сумму возврата независимо от того,
	// кто его отменил
	if newStatus == domain.StatusCancelled {
		return s.cancelByAdmin(ctx, reservationID, req.AdminMemo)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus, req.AdminMemo); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// cancelByAdmin отменяет бронирование по административному переводу статуса
// Возврат считается по тем же ступеням, что и при отмене владельцем;
// служебная заметка становится причиной отмены
func (s *Service) cancelByAdmin(ctx context.Context, reservationID int64, memo *string) error {
	res, err := s.getReservation(ctx, reservationID, "UpdateStatus")
	if err != nil {
		return err
	}

	if res.Status == domain.StatusCancelled {
		s.logger.Info("UpdateStatus: reservation id=%d is already cancelled", reservationID)
		return nil
	}

	daysBefore := domain.DaysUntil(res.ReservationDate, s.timeProvider.Now())
	refundAmount := domain.RefundAmount(res.FinalAmount, daysBefore)

	reason := "cancelled by administrator"
	if memo != nil {
		reason = *memo
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, reason, refundAmount); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: cancelled reservation id=%d, daysBefore=%d, refund=%d",
		reservationID, daysBefore, refundAmount)
	return nil
}

// Delete физически удаляет бронирование
// Разрешено только для отменённых бронирований, история не трогается
func (s *Service) Delete(ctx context.Context, reservationID int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", reservationID)

	res, err := s.getReservation(ctx, reservationID, "Delete")
	if err != nil {
		return err
	}

	if !res.CanBeDeleted() {
		s.logger.Warn("Delete: reservation id=%d has status %s, cannot delete", reservationID, res.Status)
		return ErrCannotDelete
	}

	if err := s.reservationRepo.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found during deletion", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", reservationID)
	return nil
}

// getReservation получает бронирование с маппингом ошибок репозитория
func (s *Service) getReservation(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
