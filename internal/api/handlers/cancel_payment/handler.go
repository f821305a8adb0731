package cancel_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/service/payments"
	"github.com/avdeew/HCC-ReservationService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платёж не найден"
	msgCannotCancel       = "платёж не может быть возвращён"
	msgInvalidAmount      = "некорректная сумма возврата"
	msgCancelRejected     = "возврат отклонён провайдером"
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

// Handle POST /api/v1/admin/payments/{paymentKey}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentKey := vars["paymentKey"]

	var req CancelPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/payments/{key}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), paymentKey, &models.CancelPaymentRequest{
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /admin/payments/{key}/cancel - Payment not found: key=%s", paymentKey)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrCannotCancel):
			h.logger.Warn("POST /admin/payments/{key}/cancel - Cannot cancel: key=%s", paymentKey)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, payments.ErrInvalidCancelAmount):
			h.logger.Warn("POST /admin/payments/{key}/cancel - Invalid amount: key=%s", paymentKey)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, payments.ErrCancelRejected):
			h.logger.Warn("POST /admin/payments/{key}/cancel - Rejected by provider: key=%s", paymentKey)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCancelRejected)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /admin/payments/{key}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/payments/{key}/cancel - Failed: key=%s, error=%v", paymentKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/payments/{key}/cancel - Cancelled: payment_id=%d, amount=%d, status=%s",
		result.PaymentID, result.CancelledAmount, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
