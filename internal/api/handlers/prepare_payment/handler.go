package prepare_payment

import (
	"errors"
	"net/http"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/api/middleware"
	"github.com/avdeew/HCC-ReservationService/internal/service/payments"
	"github.com/avdeew/HCC-ReservationService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotAwaitingPayment = "бронирование не ожидает оплаты"
	msgNothingToPay       = "бронирование не требует оплаты"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/prepare
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/prepare - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PreparePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/prepare - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Prepare(r.Context(), &models.PreparePaymentRequest{
		UserID:        userID,
		ReservationID: req.ReservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReservationNotFound):
			h.logger.Warn("POST /payments/prepare - Reservation not found: reservation_id=%d", req.ReservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments/prepare - Access denied: reservation_id=%d, user_id=%d",
				req.ReservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrNotAwaitingPayment):
			h.logger.Warn("POST /payments/prepare - Not awaiting payment: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgNotAwaitingPayment)

		case errors.Is(err, payments.ErrNothingToPay):
			h.logger.Warn("POST /payments/prepare - Nothing to pay: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgNothingToPay)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/prepare - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/prepare - Failed: reservation_id=%d, error=%v", req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/prepare - Payment prepared: payment_id=%d, order_id=%s",
		result.PaymentID, result.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
