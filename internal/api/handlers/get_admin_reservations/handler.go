package get_admin_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/internal/service/reservations"
	"github.com/avdeew/HCC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations?packageId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListWithFilter(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /admin/reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/reservations - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations - Returned %d reservations", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter извлекает параметры фильтрации из query string
func parseFilter(r *http.Request) (*models.ListReservationsRequest, error) {
	q := r.URL.Query()
	req := &models.ListReservationsRequest{}

	if raw := q.Get("packageId"); raw != "" {
		packageID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidPackageID)
		}
		req.PackageID = &packageID
	}

	if raw := q.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.StartDate = &startDate
	}

	if raw := q.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.EndDate = &endDate
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = q.Get("includeInactive") == "true"

	return req, nil
}
