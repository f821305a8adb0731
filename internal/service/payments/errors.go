package payments

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotAwaitingPayment возвращается, когда бронирование не ожидает оплаты
	ErrNotAwaitingPayment = errors.New("reservation is not awaiting payment")

	// ErrNothingToPay возвращается для бесплатных бронирований:
	// нулевая сумма не проводится через провайдера
	ErrNothingToPay = errors.New("reservation has nothing to pay")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrCannotCancel возвращается, когда статус платежа не допускает возврат
	ErrCannotCancel = errors.New("payment cannot be cancelled")

	// ErrInvalidCancelAmount возвращается, когда сумма возврата
	// вне диапазона (0, оставшаяся сумма]
	ErrInvalidCancelAmount = errors.New("invalid cancel amount")

	// ErrCancelRejected возвращается, когда провайдер отклонил возврат
	ErrCancelRejected = errors.New("cancel rejected by provider")

	// ErrOrderIDGeneration возвращается, когда не удалось получить
	// уникальный orderId за отведённое число попыток
	ErrOrderIDGeneration = errors.New("failed to generate unique order id")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
