package create_reservation

import (
	"fmt"
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validatePatient(&req.Patient); err != nil {
		return err
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validatePatient валидирует снимок данных пациента
func validatePatient(patient *domain.PatientInfo) error {
	if patient.Name == "" {
		return fmt.Errorf("%w: patient name is required", ErrInvalidInput)
	}
	if len(patient.Name) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patient name exceeds %d characters", ErrInvalidInput, domain.MaxPatientNameLength)
	}

	if patient.Phone == "" {
		return fmt.Errorf("%w: patient phone is required", ErrInvalidInput)
	}
	if len(patient.Phone) > domain.MaxPatientPhoneLength {
		return fmt.Errorf("%w: patient phone exceeds %d characters", ErrInvalidInput, domain.MaxPatientPhoneLength)
	}

	if patient.BirthDate.IsZero() {
		return fmt.Errorf("%w: patient birth date is required", ErrInvalidInput)
	}

	if patient.Gender != domain.GenderMale && patient.Gender != domain.GenderFemale {
		return fmt.Errorf("%w: patient gender must be %q or %q", ErrInvalidInput, domain.GenderMale, domain.GenderFemale)
	}

	return nil
}

// validateSlot проверяет дату и метку времени против сетки расписания
// Дата в прошлом не принимается; метка обязана входить в расписание пакета
func validateSlot(pkg *domain.CheckupPackage, date time.Time, startTime types.TimeString, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	slots := domain.SlotsFor(pkg, date)
	if len(slots) == 0 {
		return ErrClosedDay
	}

	for _, slot := range slots {
		if slot == startTime {
			return nil
		}
	}

	return ErrInvalidTimeSlot
}

// countInCell подсчитывает активные бронирования в точной ячейке (date, time)
// Ячейки независимы: пересечение интервалов не учитывается, сетка фиксирована
func countInCell(reservations []*domain.Reservation, startTime types.TimeString, excludeID int64) int {
	count := 0
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.IsActive() {
			continue
		}
		if res.ReservationTime == startTime {
			count++
		}
	}
	return count
}
