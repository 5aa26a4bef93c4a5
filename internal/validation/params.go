package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrInvalidLimit параметр limit не является положительным числом
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrInvalidTimestamp параметр lastSyncTimestamp не является валидным RFC3339
	ErrInvalidTimestamp = errors.New("lastSyncTimestamp must be a valid RFC3339 timestamp")
)

// usernameRegex допустимые символы username: латиница, цифры, точка,
// дефис и подчеркивание, длина 3-64
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)

// ValidateUsername проверяет формат username
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("invalid username %q: must be 3-64 characters of [a-zA-Z0-9._-]", username)
	}
	return nil
}

// ParseLimit разбирает параметр limit с верхней границей maxLimit.
// Пустое значение возвращает defaultLimit. Нечисловое или
// неположительное значение — ErrInvalidLimit.
func ParseLimit(raw string, defaultLimit, maxLimit int) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, ErrInvalidLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}

// ParseSyncTimestamp разбирает параметр lastSyncTimestamp.
// Пустое значение допустимо (первая синхронизация) и возвращает
// нулевое время. Дробные секунды принимаются: сервер отдает курсор
// с наносекундной точностью. Некорректный формат — ErrInvalidTimestamp.
func ParseSyncTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return ts, nil
}
