package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Алфавит суффикса без визуально похожих символов (0/O, 1/I/L)
const numberAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const numberSuffixLength = 6

// GenerateReservationNumber генерирует человекочитаемый номер бронирования
// вида "HC20250610-X7K2QF": префикс с датой визита плюс случайный суффикс.
// Уникальность гарантируется ограничением БД; при коллизии вставка повторяется
// со свежим номером (см. usecase создания).
func GenerateReservationNumber(reservationDate time.Time) (string, error) {
	buf := make([]byte, numberSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reservation number: %w", err)
	}

	suffix := make([]byte, numberSuffixLength)
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}

	return fmt.Sprintf("HC%s-%s", reservationDate.Format("20060102"), string(suffix)), nil
}
