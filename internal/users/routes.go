package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/perms"
)

// RegisterRoutes вешает CRUD учёток на api-сабраутер (уже за
// Bearer-фильтром). Каждый маршрут охраняется своей парой прав.
func RegisterRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc, engine)

	guard := func(path string, mw mux.MiddlewareFunc, fn http.HandlerFunc, methods ...string) {
		sub := api.PathPrefix(path).Subrouter()
		sub.Use(mw)
		sub.HandleFunc("", fn).Methods(methods...)
	}

	guard("/users", authz.Require(engine, perms.ReadGeneral, ""), h.List, http.MethodGet)
	guard("/users", authz.Require(engine, perms.CreateUserGeneral, ""), h.Create, http.MethodPost)
	guard("/users/{userId:[0-9]+}", authz.Require(engine, perms.ReadGeneral, perms.ReadSelf), h.Get, http.MethodGet)
	guard("/users/{userId:[0-9]+}", authz.Require(engine, perms.UpdateGeneral, perms.UpdateSelf), h.Update, http.MethodPatch)
	guard("/users/{userId:[0-9]+}", authz.Require(engine, perms.DeleteGeneral, ""), h.Delete, http.MethodDelete)
}
