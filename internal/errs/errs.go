package errs

import (
	"errors"
	"net/http"
)

// Ожидаемые исходы бизнес-логики. Хендлеры сводят их к problem+json,
// неизвестные ошибки уходят как 500.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("resource not found")
	ErrNameTaken        = errors.New("name already taken")
	ErrRoleLimit        = errors.New("role limit exceeded")
	ErrAccountLocked    = errors.New("account locked")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrAccountMissing   = errors.New("account record missing")
	ErrCodeNotFound     = errors.New("code not found")
	ErrCodeConsumed     = errors.New("code already consumed")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrBadSignature     = errors.New("invalid signature")
	ErrTokenUnsupported = errors.New("token not supported")
)

// StatusOf — HTTP-код для известной ошибки: 401 токены/аутентификация,
// 404 not-found, 400 остальное, 500 для всего незнакомого.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrAuthFailed),
		errors.Is(err, ErrAccountLocked),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrTokenUnsupported):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNameTaken),
		errors.Is(err, ErrRoleLimit),
		errors.Is(err, ErrAccountMissing),
		errors.Is(err, ErrCodeNotFound),
		errors.Is(err, ErrCodeConsumed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsKnown — true, если ошибка принадлежит одному из перечисленных видов.
func IsKnown(err error) bool {
	return StatusOf(err) != http.StatusInternalServerError
}
