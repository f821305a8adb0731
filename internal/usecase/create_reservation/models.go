package create_reservation

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64              // ID владельца аккаунта
	PackageID int64              // ID пакета обследования
	Date      time.Time          // Дата визита (без времени)
	StartTime types.TimeString   // Метка слота, например "14:30"
	Patient   domain.PatientInfo // Снимок данных пациента
	Note      *string            // Комментарий клиента (опционально)

	// ForceConfirm сразу создает бронирование в статусе confirmed
	// Используется административным созданием; бесплатные пакеты
	// подтверждаются автоматически независимо от флага
	ForceConfirm bool
}

// Response модель ответа с созданным бронированием
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

	Note *string

	CreatedAt time.Time
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
		Note:            res.Note,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
