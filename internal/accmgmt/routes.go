package accmgmt

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
)

// RegisterPublicRoutes вешает маршруты, доступные без токена: вход,
// активация, восстановление, одноразовый бутстрап.
func RegisterPublicRoutes(r *mux.Router, svc *Service) {
	h := NewHandler(svc)
	r.HandleFunc("/auth", h.Authenticate).Methods(http.MethodPost)
	r.HandleFunc("/enable-acc", h.EnableAccount).Methods(http.MethodGet, http.MethodPut)
	r.HandleFunc("/acc-recovery/{email}", h.RequestRecovery).Methods(http.MethodGet)
	r.HandleFunc("/reset-pass", h.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/create-super-user", h.CreateSuperUser).Methods(http.MethodPost)
}

// RegisterProtectedRoutes — разблокировка учётки, только для ADMIN.
// Вешается на api-сабраутер, уже прикрытый Bearer-фильтром.
func RegisterProtectedRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc)
	unlock := api.PathPrefix("/users/{userId:[0-9]+}/unlock-acc").Subrouter()
	unlock.Use(authz.RequireRoleName(engine, authz.AdminRoleName))
	unlock.HandleFunc("", h.Unlock).Methods(http.MethodPost)
}
