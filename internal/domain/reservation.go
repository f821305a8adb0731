package domain

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"   // ожидает оплаты
	StatusConfirmed ReservationStatus = "confirmed" // оплачено или бесплатный пакет
	StatusCompleted ReservationStatus = "completed" // обследование состоялось
	StatusCancelled ReservationStatus = "cancelled" // отменено (терминальный)
	StatusNoShow    ReservationStatus = "no_show"   // неявка (терминальный)
)

// PatientInfo снимок данных пациента на момент бронирования
// Хранится прямо в записи бронирования и не ссылается на профиль пользователя:
// пациент может отличаться от владельца аккаунта, а данные должны быть
// неизменны после подтверждения (аудит)
type PatientInfo struct {
	Name      string
	Phone     string
	BirthDate time.Time
	Gender    string // "male" | "female"
}

// Reservation represents a health-checkup reservation
type Reservation struct {
	ID        int64
	Number    string // уникальный человекочитаемый номер ("HC20250610-X7K2QF")
	UserID    int64
	PackageID int64

	ReservationDate time.Time        // дата визита (время обнулено)
	ReservationTime types.TimeString // метка слота, например "14:30"
	Status          ReservationStatus

	Patient PatientInfo

	TotalAmount    int64 // цена пакета
	DiscountAmount int64
	FinalAmount    int64 // TotalAmount - DiscountAmount

	PaymentID *int64 // ссылка на актуальный платёж (опционально)

	Note      *string // комментарий клиента
	AdminMemo *string // служебная заметка, клиенту не видна

	// Заполняются только при отмене
	CancelledAt  *time.Time
	CancelReason *string
	RefundAmount *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies slot capacity
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the reservation can transition to confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeRescheduled returns true if the reservation can be moved to another slot
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeDeleted returns true if the record can be physically removed
// Физическое удаление разрешено только для отменённых бронирований
func (r *Reservation) CanBeDeleted() bool {
	return r.Status == StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed for customers
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusNoShow
}

// ActiveStatuses статусы, занимающие вместимость слота
// Используются при подсчёте занятости ячейки (package, date, time)
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseReservationStatus валидирует и конвертирует строку в статус
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// ReservationsFilter фильтр для административной выборки бронирований
type ReservationsFilter struct {
	PackageID       *int64             // Фильтр по пакету (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и неявки
}
