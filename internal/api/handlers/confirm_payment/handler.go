package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/api/middleware"
	confirmPayment "github.com/avdeew/HCC-ReservationService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPaymentNotFound    = "платёж не найден"
	msgPaymentNotReady    = "платёж уже обработан"
	msgAmountMismatch     = "сумма платежа не совпадает"
	msgNotPending         = "бронирование не ожидает оплаты"
	msgPaymentRejected    = "платёж отклонён провайдером"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		UserID:     userID,
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/confirm - Payment not found: order_id=%s", req.OrderID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, confirmPayment.ErrPaymentNotReady):
			h.logger.Warn("POST /payments/confirm - Payment not ready: order_id=%s", req.OrderID)
			handlers.RespondBadRequest(w, msgPaymentNotReady)

		case errors.Is(err, confirmPayment.ErrAmountMismatch):
			// Расхождение суммы подозрительно: логируем с деталями
			h.logger.Warn("POST /payments/confirm - Amount mismatch: order_id=%s, user_id=%d, amount=%d",
				req.OrderID, userID, req.Amount)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, confirmPayment.ErrReservationNotPending):
			h.logger.Warn("POST /payments/confirm - Reservation not pending: order_id=%s", req.OrderID)
			handlers.RespondBadRequest(w, msgNotPending)

		case errors.Is(err, confirmPayment.ErrPaymentRejected):
			h.logger.Warn("POST /payments/confirm - Rejected by provider: order_id=%s", req.OrderID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentRejected)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/confirm - Failed: order_id=%s, error=%v", req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/confirm - Payment confirmed: payment_id=%d, reservation_id=%d",
		result.PaymentID, result.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
