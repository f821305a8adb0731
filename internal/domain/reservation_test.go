package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatusPredicates(t *testing.T) {
	tests := []struct {
		status        ReservationStatus
		active        bool
		canCancel     bool
		canConfirm    bool
		canReschedule bool
		canDelete     bool
		terminal      bool
	}{
		{StatusPending, true, true, true, true, false, false},
		{StatusConfirmed, true, true, false, true, false, false},
		{StatusCompleted, false, false, false, false, false, false},
		{StatusCancelled, false, false, false, false, true, true},
		{StatusNoShow, false, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}

			assert.Equal(t, tt.active, r.IsActive())
			assert.Equal(t, tt.canCancel, r.CanBeCancelled())
			assert.Equal(t, tt.canConfirm, r.CanBeConfirmed())
			assert.Equal(t, tt.canReschedule, r.CanBeRescheduled())
			assert.Equal(t, tt.canDelete, r.CanBeDeleted())
			assert.Equal(t, tt.terminal, r.IsTerminal())
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, ok := ParseReservationStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseReservationStatus("refunded")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("")
	assert.False(t, ok)

	// Регистр имеет значение
	_, ok = ParseReservationStatus("Pending")
	assert.False(t, ok)
}
