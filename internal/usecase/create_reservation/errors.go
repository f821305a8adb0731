package create_reservation

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет обследования не найден
	ErrPackageNotFound = errors.New("create_reservation: package not found")

	// ErrSlotFull возвращается, когда вместимость ячейки исчерпана
	ErrSlotFull = errors.New("create_reservation: slot is full")

	// ErrSlotBlocked возвращается, когда ячейка закрыта административной блокировкой
	ErrSlotBlocked = errors.New("create_reservation: slot is blocked")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrClosedDay возвращается, когда клиника закрыта в указанную дату
	// или пакет недоступен в этот день недели
	ErrClosedDay = errors.New("create_reservation: clinic is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда метка времени не входит в сетку расписания
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrNumberGeneration возвращается, когда не удалось получить уникальный
	// номер бронирования за отведённое число попыток
	ErrNumberGeneration = errors.New("create_reservation: failed to generate unique reservation number")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
