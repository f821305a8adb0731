package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	rescheduleReservation "github.com/avdeew/HCC-ReservationService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateFormat    = "некорректный формат даты или времени"
	msgNotFound             = "бронирование не найдено"
	msgNotReschedulable     = "бронирование не может быть перенесено"
	msgSlotFull             = "целевой слот заполнен"
	msgSlotBlocked          = "целевой слот закрыт для записи"
	msgInvalidDate          = "некорректная целевая дата"
	msgClosedDay            = "центр закрыт в целевую дату"
	msgInvalidTimeSlot      = "некорректная целевая метка времени"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrNotReschedulable):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Not reschedulable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleReservation.ErrSlotFull):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Slot full: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, rescheduleReservation.ErrSlotBlocked):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Slot blocked: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, rescheduleReservation.ErrInvalidDate):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Invalid date: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleReservation.ErrClosedDay):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Closed day: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, rescheduleReservation.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Invalid time slot: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/reservations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /admin/reservations/{id}/reschedule - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/reschedule - Rescheduled: reservation_id=%d to %s %s",
		reservationID, result.ReservationDate.Format("2006-01-02"), result.ReservationTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
