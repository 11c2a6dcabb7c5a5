package userinfo

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/perms"
)

// RegisterRoutes — профиль учётки за Bearer-фильтром. Заведение и
// правка профиля чужой учётки требуют общего права на изменение.
func RegisterRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc)

	guard := func(mw mux.MiddlewareFunc, fn http.HandlerFunc, methods ...string) {
		sub := api.PathPrefix("/users/{userId:[0-9]+}/info").Subrouter()
		sub.Use(mw)
		sub.HandleFunc("", fn).Methods(methods...)
	}

	guard(authz.Require(engine, perms.ReadGeneral, perms.ReadSelf), h.Get, http.MethodGet)
	guard(authz.Require(engine, perms.UpdateGeneral, perms.CreateInfoSelf), h.Create, http.MethodPost)
	guard(authz.Require(engine, perms.UpdateGeneral, perms.UpdateInfoSelf), h.Update, http.MethodPut)
}
