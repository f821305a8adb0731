package payprovider

import "errors"

var (
	// ErrPaymentRejected возвращается, когда провайдер отклонил подтверждение платежа
	ErrPaymentRejected = errors.New("payprovider client: payment rejected by provider")

	// ErrCancelRejected возвращается, когда провайдер отклонил возврат
	ErrCancelRejected = errors.New("payprovider client: cancel rejected by provider")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payprovider client: invalid response")
)
