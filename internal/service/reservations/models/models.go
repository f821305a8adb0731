package models

import (
	"errors"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// UpdateStatusRequest запрос на административную смену статуса
type UpdateStatusRequest struct {
	Status    string  `json:"status"`
	AdminMemo *string `json:"adminMemo,omitempty"`
}

// ListReservationsRequest запрос административного списка бронирований
type ListReservationsRequest struct {
	PackageID       *int64     `json:"packageId,omitempty"`       // Фильтр по пакету (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		PackageID:       r.PackageID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	Number          string `json:"number"`
	UserID          int64  `json:"userId"`
	PackageID       int64  `json:"packageId"`
	ReservationDate string `json:"reservationDate"` // "2026-03-14"
	ReservationTime string `json:"reservationTime"` // "09:30"
	Status          string `json:"status"`

	// Снимок данных пациента на момент бронирования
	PatientName      string `json:"patientName"`
	PatientPhone     string `json:"patientPhone"`
	PatientBirthDate string `json:"patientBirthDate"` // "1987-06-15"
	PatientGender    string `json:"patientGender"`

	TotalAmount    int64 `json:"totalAmount"`
	DiscountAmount int64 `json:"discountAmount"`
	FinalAmount    int64 `json:"finalAmount"`

	PaymentID *int64  `json:"paymentId,omitempty"`
	Note      *string `json:"note,omitempty"`
	AdminMemo *string `json:"adminMemo,omitempty"`

	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancelReason *string `json:"cancelReason,omitempty"`
	RefundAmount *int64  `json:"refundAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// CancelReservationResponse ответ на отмену бронирования
type CancelReservationResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	RefundAmount int64  `json:"refundAmount"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:               r.ID,
		Number:           r.Number,
		UserID:           r.UserID,
		PackageID:        r.PackageID,
		ReservationDate:  r.ReservationDate.Format(domain.DateFormat),
		ReservationTime:  r.ReservationTime.String(),
		Status:           string(r.Status),
		PatientName:      r.Patient.Name,
		PatientPhone:     r.Patient.Phone,
		PatientBirthDate: r.Patient.BirthDate.Format(domain.DateFormat),
		PatientGender:    r.Patient.Gender,
		TotalAmount:      r.TotalAmount,
		DiscountAmount:   r.DiscountAmount,
		FinalAmount:      r.FinalAmount,
		PaymentID:        r.PaymentID,
		Note:             r.Note,
		AdminMemo:        r.AdminMemo,
		CancelReason:     r.CancelReason,
		RefundAmount:     r.RefundAmount,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, r := range reservations {
		if rr := FromDomainReservation(r); rr != nil {
			resp.Reservations[i] = *rr
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s, ok := domain.ParseReservationStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
