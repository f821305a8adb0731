// Package middleware HTTP middleware: аутентификация по заголовкам
// и сбор метрик запросов
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avdeew/HCC-ReservationService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	adminIDKey contextKey = "adminID"

	// HeaderUserID заголовок идентификации пользователя
	HeaderUserID = "X-User-ID"
	// HeaderAdminID заголовок идентификации администратора
	HeaderAdminID = "X-Admin-ID"
)

// Auth проверяет наличие корректного X-User-ID заголовка
// и кладёт ID пользователя в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDHeader(r, HeaderUserID)
		if err != nil {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок "+HeaderUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth проверяет наличие корректного X-Admin-ID заголовка
// и кладёт ID администратора в контекст запроса
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, err := parseIDHeader(r, HeaderAdminID)
		if err != nil {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок "+HeaderAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetAdminID извлекает ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

func parseIDHeader(r *http.Request, header string) (int64, error) {
	raw := r.Header.Get(header)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
