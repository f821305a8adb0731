package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinReservationsPerSlot      = 1
	MaxReservationsPerSlotLimit = 100

	MaxNoteLength         = 500
	MaxCancelReasonLength = 500
	MaxAdminMemoLength    = 1000
	MaxPatientNameLength  = 100
	MaxPatientPhoneLength = 20
)

// Gender values accepted in the patient snapshot
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// MaxNumberGenAttempts число попыток перегенерации номера бронирования
// при коллизии уникальности на вставке
const MaxNumberGenAttempts = 3
