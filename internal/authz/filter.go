package authz

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/token"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFrom достаёт утверждения токена из контекста запроса.
// Никакого ambient-состояния: кто вызывает — только через контекст.
func ClaimsFrom(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*token.Claims)
	return c, ok
}

func withClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func unauthorized(w http.ResponseWriter, detail string) {
	models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", detail, nil)
}

// Bearer — фильтр границы: без валидного "Authorization: Bearer <token>"
// запрос до бизнес-логики не доходит. Отказы токена (просрочен, битая
// подпись, мусор) дают 401 ровно здесь.
func Bearer(ts *token.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, p) {
				unauthorized(w, "missing bearer token")
				return
			}
			claims, err := ts.Verify(strings.TrimPrefix(auth, p))
			if err != nil {
				unauthorized(w, err.Error())
				return
			}
			// Токен обязан быть привязан к учётке: и subject, и uid.
			if claims.Subject == "" || claims.UserID == 0 {
				unauthorized(w, errs.ErrTokenMalformed.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// Require — охрана маршрута парой (general, self). Владелец ресурса
// берётся из path-переменной userId; если её нет — self-ветка
// недостижима. Пустой Permission в любой позиции отключает эту ветку.
func Require(e *Engine, general, self perms.Permission) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				unauthorized(w, "no authenticated caller")
				return
			}

			var ownerID uint
			if raw, has := mux.Vars(r)["userId"]; has {
				if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
					ownerID = uint(v)
				}
			}

			allowed, err := e.IsAuthorized(r.Context(), claims.UserID, ownerID, general, self)
			if err != nil {
				// Подпись верна, а учётки уже нет: протухший токен, 401.
				if errors.Is(err, errs.ErrNotFound) {
					unauthorized(w, "account no longer exists")
					return
				}
				models.WriteProblem(w, http.StatusInternalServerError,
					"Internal Server Error", "authorization check failed", nil)
				return
			}
			if !allowed {
				models.WriteProblem(w, http.StatusForbidden, "Forbidden",
					"insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleName пускает только обладателей роли с данным именем.
func RequireRoleName(e *Engine, name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				unauthorized(w, "no authenticated caller")
				return
			}
			allowed, err := e.HasRoleNamed(r.Context(), claims.UserID, name)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					unauthorized(w, "account no longer exists")
					return
				}
				models.WriteProblem(w, http.StatusInternalServerError,
					"Internal Server Error", "authorization check failed", nil)
				return
			}
			if !allowed {
				models.WriteProblem(w, http.StatusForbidden, "Forbidden",
					"insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
