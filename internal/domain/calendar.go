package domain

import (
	"fmt"
	"time"

	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// Сетка расписания фиксирована для всей клиники: получасовые слоты
// утром и после обеда, обеденный перерыв не бронируется
const (
	morningOpenMinutes    = 9 * 60  // 09:00
	morningCloseMinutes   = 12 * 60 // 12:00
	afternoonOpenMinutes  = 13 * 60 // 13:00
	afternoonCloseMinutes = 17 * 60 // 17:00
	SlotStepMinutes       = 30
)

// ClosureWeekday фиксированный еженедельный выходной клиники
// Перекрывает AvailableDays пакета
const ClosureWeekday = time.Sunday

var dailyGrid = buildDailyGrid()

func buildDailyGrid() []types.TimeString {
	grid := make([]types.TimeString, 0)
	for _, band := range [][2]int{
		{morningOpenMinutes, morningCloseMinutes},
		{afternoonOpenMinutes, afternoonCloseMinutes},
	} {
		for m := band[0]; m+SlotStepMinutes <= band[1]; m += SlotStepMinutes {
			grid = append(grid, types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)))
		}
	}
	return grid
}

// DailyGrid возвращает полную дневную сетку слотов в хронологическом порядке
// Результат — копия, вызывающая сторона может её модифицировать
func DailyGrid() []types.TimeString {
	grid := make([]types.TimeString, len(dailyGrid))
	copy(grid, dailyGrid)
	return grid
}

// IsClosedDay returns true if the clinic is closed on the given date
func IsClosedDay(date time.Time) bool {
	return date.Weekday() == ClosureWeekday
}

// SlotsFor возвращает упорядоченный набор бронируемых меток времени
// для пакета на указанную дату. Чистая функция: одинаковые входы дают
// идентичный упорядоченный результат.
//
// Еженедельный выходной обнуляет расписание любого пакета независимо
// от его AvailableDays.
func SlotsFor(pkg *CheckupPackage, date time.Time) []types.TimeString {
	if IsClosedDay(date) {
		return []types.TimeString{}
	}
	if !pkg.IsAvailableOn(date.Weekday()) {
		return []types.TimeString{}
	}
	return DailyGrid()
}

// InGrid returns true if the time label is a valid slot of the daily grid
func InGrid(slot types.TimeString) bool {
	for _, t := range dailyGrid {
		if t == slot {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
