package get_available_slots

import (
	"github.com/avdeew/HCC-ReservationService/internal/domain"
	getAvailableSlots "github.com/avdeew/HCC-ReservationService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time           string `json:"time"` // "09:30"
	Available      bool   `json:"available"`
	RemainingSlots int    `json:"remainingSlots"`
	TotalSlots     int    `json:"totalSlots"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	PackageID int64          `json:"packageId"`
	Date      string         `json:"date"` // "2026-03-14"
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:           s.Time.String(),
			Available:      s.Available,
			RemainingSlots: s.RemainingSlots,
			TotalSlots:     s.TotalSlots,
		})
	}

	return &AvailableSlotsResponse{
		PackageID: resp.PackageID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
