package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrNotReschedulable возвращается, когда статус бронирования
	// не допускает перенос (завершено, отменено или неявка)
	ErrNotReschedulable = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrSlotFull возвращается, когда вместимость целевой ячейки исчерпана
	ErrSlotFull = errors.New("reschedule_reservation: target slot is full")

	// ErrSlotBlocked возвращается, когда целевая ячейка закрыта блокировкой
	ErrSlotBlocked = errors.New("reschedule_reservation: target slot is blocked")

	// ErrInvalidDate возвращается при некорректной целевой дате
	ErrInvalidDate = errors.New("reschedule_reservation: invalid target date")

	// ErrClosedDay возвращается, когда клиника закрыта в целевую дату
	// или пакет недоступен в этот день недели
	ErrClosedDay = errors.New("reschedule_reservation: clinic is closed on target date")

	// ErrInvalidTimeSlot возвращается, когда целевая метка не входит в сетку
	ErrInvalidTimeSlot = errors.New("reschedule_reservation: invalid target time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
