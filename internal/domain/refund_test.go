package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 0},
		{"next day just after midnight", time.Date(2026, 3, 11, 0, 10, 0, 0, time.UTC), 1},
		{"a week ahead", time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC), 7},
		{"date in the past", time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.date, now))
		})
	}
}

func TestRefundRate(t *testing.T) {
	tests := []struct {
		daysBefore int
		want       float64
	}{
		{-5, 0.0},
		{0, 0.0},
		{1, 0.5},
		{2, 0.5},
		{3, 0.8},
		{6, 0.8},
		{7, 1.0},
		{30, 1.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RefundRate(tt.daysBefore), "daysBefore=%d", tt.daysBefore)
	}
}

func TestRefundAmount(t *testing.T) {
	// Округление вниз: 50% от 99 = 49
	assert.Equal(t, int64(49), RefundAmount(99, 1))
	assert.Equal(t, int64(79), RefundAmount(99, 3))
	assert.Equal(t, int64(99), RefundAmount(99, 7))
	assert.Equal(t, int64(0), RefundAmount(99, 0))
	assert.Equal(t, int64(0), RefundAmount(0, 7))
}
