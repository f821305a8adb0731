package create_reservation

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	createReservation "github.com/avdeew/HCC-ReservationService/internal/usecase/create_reservation"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PackageID        int64   `json:"packageId"`
	ReservationDate  string  `json:"reservationDate"` // "2026-03-14"
	ReservationTime  string  `json:"reservationTime"` // "09:30"
	PatientName      string  `json:"patientName"`
	PatientPhone     string  `json:"patientPhone"`
	PatientBirthDate string  `json:"patientBirthDate"` // "1987-06-15"
	PatientGender    string  `json:"patientGender"`    // "male" / "female"
	Note             *string `json:"note,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64   `json:"id"`
	Number           string  `json:"number"`
	UserID           int64   `json:"userId"`
	PackageID        int64   `json:"packageId"`
	ReservationDate  string  `json:"reservationDate"`
	ReservationTime  string  `json:"reservationTime"`
	Status           string  `json:"status"`
	PatientName      string  `json:"patientName"`
	PatientPhone     string  `json:"patientPhone"`
	PatientBirthDate string  `json:"patientBirthDate"`
	PatientGender    string  `json:"patientGender"`
	TotalAmount      int64   `json:"totalAmount"`
	DiscountAmount   int64   `json:"discountAmount"`
	FinalAmount      int64   `json:"finalAmount"`
	Note             *string `json:"note,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	reservationDate, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	reservationTime, err := types.NewTimeStringFromString(r.ReservationTime)
	if err != nil {
		return nil, err
	}

	birthDate, err := time.Parse(domain.DateFormat, r.PatientBirthDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		PackageID: r.PackageID,
		Date:      reservationDate,
		StartTime: reservationTime,
		Patient: domain.PatientInfo{
			Name:      r.PatientName,
			Phone:     r.PatientPhone,
			BirthDate: birthDate,
			Gender:    r.PatientGender,
		},
		Note: r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		Number:           resp.Number,
		UserID:           resp.UserID,
		PackageID:        resp.PackageID,
		ReservationDate:  resp.ReservationDate.Format(domain.DateFormat),
		ReservationTime:  resp.ReservationTime.String(),
		Status:           resp.Status,
		PatientName:      resp.Patient.Name,
		PatientPhone:     resp.Patient.Phone,
		PatientBirthDate: resp.Patient.BirthDate.Format(domain.DateFormat),
		PatientGender:    resp.Patient.Gender,
		TotalAmount:      resp.TotalAmount,
		DiscountAmount:   resp.DiscountAmount,
		FinalAmount:      resp.FinalAmount,
		Note:             resp.Note,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
