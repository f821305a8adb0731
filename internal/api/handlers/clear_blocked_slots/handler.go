package clear_blocked_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots"
	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots/models"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	service BlockedSlotService
	logger  Logger
}

func NewHandler(service BlockedSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/blocked-slots?date=YYYY-MM-DD&packageId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.ClearBlocksRequest{Date: date}
	if raw := q.Get("packageId"); raw != "" {
		packageID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /admin/blocked-slots - Invalid package ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPackageID)
			return
		}
		req.PackageID = &packageID
	}

	result, err := h.service.ClearByDate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/blocked-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /admin/blocked-slots - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-slots - Cleared %d blocks on %s",
		result.Deleted, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, result)
}
