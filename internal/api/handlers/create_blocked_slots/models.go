package create_blocked_slots

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots/models"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// CreateBlockedSlotsRequest HTTP request model
// packageId == null блокирует ячейки для всех пакетов
type CreateBlockedSlotsRequest struct {
	Date      string   `json:"date"`  // "2026-03-14"
	Times     []string `json:"times"` // ["09:30", "10:00"]
	PackageID *int64   `json:"packageId,omitempty"`
	Reason    *string  `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedSlotsRequest) ToServiceRequest() (*models.CreateBlocksRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	times := make([]types.TimeString, 0, len(r.Times))
	for _, raw := range r.Times {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	return &models.CreateBlocksRequest{
		Date:      date,
		Times:     times,
		PackageID: r.PackageID,
		Reason:    r.Reason,
	}, nil
}
