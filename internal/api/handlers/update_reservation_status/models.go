package update_reservation_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status    string  `json:"status"`
	AdminMemo *string `json:"adminMemo,omitempty"`
}
