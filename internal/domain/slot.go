package domain

import "github.com/avdeew/HCC-ReservationService/pkg/types"

// AvailableSlot represents one cell of the availability view
type AvailableSlot struct {
	Time           types.TimeString
	Available      bool
	RemainingSlots int // свободные места, не бывает отрицательным
	TotalSlots     int // вместимость ячейки (MaxReservationsPerSlot пакета)
}

// IsFull returns true if the slot has no remaining capacity
func (s *AvailableSlot) IsFull() bool {
	return s.RemainingSlots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	occupied := s.TotalSlots - s.RemainingSlots
	return float64(occupied) / float64(s.TotalSlots) * 100
}
