package domain

import (
	"math"
	"time"
)

// Ступенчатая шкала возврата при отмене, по числу полных дней до визита:
// в день визита и позже — 0%, за 1-2 дня — 50%, за 3-6 дней — 80%, за 7+ — 100%
const (
	refundRateSameDay = 0.0
	refundRateShort   = 0.5
	refundRateMedium  = 0.8
	refundRateFull    = 1.0
	refundFullDays    = 7
	refundMediumDays  = 3
	refundShortDays   = 1
)

// DaysUntil возвращает количество полных дней от now до даты визита
// Сравниваются только календарные даты; отрицательное значение — визит в прошлом
func DaysUntil(reservationDate, now time.Time) int {
	date := DateOnly(reservationDate)
	today := DateOnly(now)
	return int(date.Sub(today).Hours() / 24)
}

// RefundRate возвращает долю возврата для указанного числа дней до визита
// Неубывающая ступенчатая функция с порогами 1, 3 и 7 дней
func RefundRate(daysBefore int) float64 {
	switch {
	case daysBefore >= refundFullDays:
		return refundRateFull
	case daysBefore >= refundMediumDays:
		return refundRateMedium
	case daysBefore >= refundShortDays:
		return refundRateShort
	default:
		return refundRateSameDay
	}
}

// RefundAmount возвращает сумму возврата: floor(finalAmount * rate)
func RefundAmount(finalAmount int64, daysBefore int) int64 {
	return int64(math.Floor(float64(finalAmount) * RefundRate(daysBefore)))
}
