package get_available_slots

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет обследования не найден
	ErrPackageNotFound = errors.New("get_available_slots: package not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
