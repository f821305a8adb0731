// Package payprovider клиент платёжного провайдера
//
// Провайдер подтверждает платежи по тройке (paymentKey, orderId, amount)
// и исполняет полные/частичные возвраты по paymentKey
package payprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с платёжным провайдером
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL string, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Confirm подтверждает платёж у провайдера
// Возвращает ErrPaymentRejected, если провайдер отклонил подтверждение
// (бизнес-отказ, не инфраструктурная ошибка)
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*ConfirmResponse, error) {
	reqBody := ConfirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	}

	var resp ConfirmResponse
	if err := c.post(ctx, "/v1/payments/confirm", reqBody, &resp, ErrPaymentRejected); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Cancel исполняет полный или частичный возврат платежа
func (c *Client) Cancel(ctx context.Context, paymentKey string, reason string, amount *int64) (*CancelResponse, error) {
	reqBody := CancelRequest{
		CancelReason: reason,
		CancelAmount: amount,
	}

	path := fmt.Sprintf("/v1/payments/%s/cancel", paymentKey)

	var resp CancelResponse
	if err := c.post(ctx, path, reqBody, &resp, ErrCancelRejected); err != nil {
		return nil, err
	}

	return &resp, nil
}

// post выполняет POST запрос к провайдеру и декодирует ответ
// 4xx ответы мапятся в rejectErr с кодом и сообщением провайдера
func (c *Client) post(ctx context.Context, path string, reqBody interface{}, out interface{}, rejectErr error) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var provErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&provErr); err != nil {
			return fmt.Errorf("%w: status %d", rejectErr, resp.StatusCode)
		}
		c.log.Warn("Provider rejected request %s: code=%s, message=%s", path, provErr.Code, provErr.Message)
		return fmt.Errorf("%w: code=%s, message=%s", rejectErr, provErr.Code, provErr.Message)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
