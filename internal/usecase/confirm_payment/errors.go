package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж по orderId не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrPaymentNotReady возвращается, когда платёж уже обработан
	// и не может быть подтверждён повторно
	ErrPaymentNotReady = errors.New("confirm_payment: payment is not awaiting confirmation")

	// ErrAmountMismatch возвращается при расхождении суммы подтверждения
	// с суммой платежа. Провайдер в этом случае не вызывается
	ErrAmountMismatch = errors.New("confirm_payment: amount mismatch")

	// ErrReservationNotPending возвращается, когда бронирование уже
	// не ожидает оплаты (отменено или переведено в другой статус)
	ErrReservationNotPending = errors.New("confirm_payment: reservation is not awaiting payment")

	// ErrPaymentRejected возвращается, когда провайдер отклонил подтверждение
	ErrPaymentRejected = errors.New("confirm_payment: payment rejected by provider")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
