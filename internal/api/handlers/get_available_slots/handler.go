package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/domain"
	getAvailableSlots "github.com/avdeew/HCC-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPackageNotFound  = "пакет обследования не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	packageID, err := strconv.ParseInt(vars["packageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/available-slots - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /packages/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		PackageID: packageID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPackageNotFound):
			h.logger.Warn("GET /packages/{id}/available-slots - Package not found: package_id=%d", packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /packages/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /packages/{id}/available-slots - Failed: package_id=%d, error=%v", packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /packages/{id}/available-slots - Returned %d slots: package_id=%d",
		len(result.Slots), packageID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
