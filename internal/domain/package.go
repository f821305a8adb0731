package domain

import "time"

// CheckupPackage represents a bookable checkup product
// Каталог пакетов ведётся админкой в другом сервисе; здесь только чтение
type CheckupPackage struct {
	ID              int64
	Name            string
	Description     *string
	Price           int64  // базовая цена
	DiscountPrice   *int64 // акционная цена, если задана
	DurationMinutes int

	// Вместимость одной ячейки (package, date, time); всегда >= 1
	MaxReservationsPerSlot int

	// Дни недели, в которые пакет доступен (0 = воскресенье ... 6 = суббота)
	AvailableDays []time.Weekday

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailableOn returns true if the package is offered on the given weekday
func (p *CheckupPackage) IsAvailableOn(weekday time.Weekday) bool {
	for _, day := range p.AvailableDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// DiscountAmount returns the discount relative to the base price
// Акционная цена выше базовой считается ошибкой данных и игнорируется
func (p *CheckupPackage) DiscountAmount() int64 {
	if p.DiscountPrice == nil {
		return 0
	}
	if *p.DiscountPrice >= p.Price {
		return 0
	}
	return p.Price - *p.DiscountPrice
}

// FinalAmount returns the amount the customer actually pays
func (p *CheckupPackage) FinalAmount() int64 {
	return p.Price - p.DiscountAmount()
}

// IsFree returns true if the package requires no payment
func (p *CheckupPackage) IsFree() bool {
	return p.FinalAmount() == 0
}
