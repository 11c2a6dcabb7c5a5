package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crewhub/internal/errs"
)

// Claims — стандартные утверждения плюс числовой id учётки.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

// Service подписывает и проверяет токены сессии. Проверка — чистая
// функция от (токен, ключ, текущее время), внешнего состояния нет.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue выпускает токен с subject и uid; exp = сейчас + настроенный TTL.
func (s *Service) Issue(subject string, userID uint, extra map[string]any) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"uid": userID,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(s.ttl)),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify разбирает токен и возвращает claims.
// Виды отказов: ErrTokenMalformed, ErrBadSignature, ErrTokenExpired,
// ErrTokenUnsupported.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: alg %v", errs.ErrTokenUnsupported, t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTokenUnsupported):
			return nil, errs.ErrTokenUnsupported
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errs.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, errs.ErrBadSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, errs.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, errs.ErrTokenUnsupported
		default:
			return nil, fmt.Errorf("%w: %v", errs.ErrTokenMalformed, err)
		}
	}
	if !tok.Valid {
		return nil, errs.ErrBadSignature
	}
	return claims, nil
}

// MatchesIdentity проверяет токен и сравнивает subject с ожидаемым.
func (s *Service) MatchesIdentity(tokenString, expectedSubject string) bool {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
