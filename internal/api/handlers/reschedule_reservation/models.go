package reschedule_reservation

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	rescheduleReservation "github.com/avdeew/HCC-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDate string `json:"newDate"` // "2026-03-14"
	NewTime string `json:"newTime"` // "09:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	Number          string `json:"number"`
	UserID          int64  `json:"userId"`
	PackageID       int64  `json:"packageId"`
	ReservationDate string `json:"reservationDate"`
	ReservationTime string `json:"reservationTime"`
	Status          string `json:"status"`
	TotalAmount     int64  `json:"totalAmount"`
	DiscountAmount  int64  `json:"discountAmount"`
	FinalAmount     int64  `json:"finalAmount"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(reservationID int64) (*rescheduleReservation.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newTime, err := types.NewTimeStringFromString(r.NewTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleReservation.Request{
		ReservationID: reservationID,
		NewDate:       newDate,
		NewTime:       newTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		Number:          resp.Number,
		UserID:          resp.UserID,
		PackageID:       resp.PackageID,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		ReservationTime: resp.ReservationTime.String(),
		Status:          resp.Status,
		TotalAmount:     resp.TotalAmount,
		DiscountAmount:  resp.DiscountAmount,
		FinalAmount:     resp.FinalAmount,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
