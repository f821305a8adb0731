package prepare_payment

// PreparePaymentRequest HTTP request model
type PreparePaymentRequest struct {
	ReservationID int64 `json:"reservationId"`
}
