package reschedule_reservation

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID int64            // ID переносимого бронирования
	NewDate       time.Time        // Целевая дата (без времени)
	NewTime       types.TimeString // Целевая метка слота
}

// Response модель ответа с перенесённым бронированием
// Номер, пациент и суммы остаются прежними: перенос меняет только ячейку
type Response struct {
	ID              int64
	Number          string
	UserID          int64
	PackageID       int64
	ReservationDate time.Time
	ReservationTime types.TimeString
	Status          string

	Patient domain.PatientInfo

	TotalAmount    int64
	DiscountAmount int64
	FinalAmount    int64

	UpdatedAt time.Time
}

func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		Number:          res.Number,
		UserID:          res.UserID,
		PackageID:       res.PackageID,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		Status:          string(res.Status),
		Patient:         res.Patient,
		TotalAmount:     res.TotalAmount,
		DiscountAmount:  res.DiscountAmount,
		FinalAmount:     res.FinalAmount,
		UpdatedAt:       res.UpdatedAt,
	}
}
