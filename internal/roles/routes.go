package roles

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/perms"
)

// RegisterRoutes — CRUD ролей за Bearer-фильтром. Self-ветки у ролей
// нет: роль никому не принадлежит.
func RegisterRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc)

	guard := func(path string, mw mux.MiddlewareFunc, fn http.HandlerFunc, methods ...string) {
		sub := api.PathPrefix(path).Subrouter()
		sub.Use(mw)
		sub.HandleFunc("", fn).Methods(methods...)
	}

	guard("/roles", authz.Require(engine, perms.ReadGeneral, ""), h.List, http.MethodGet)
	guard("/roles", authz.Require(engine, perms.CreateRoleGeneral, ""), h.Create, http.MethodPost)
	guard("/roles/{roleId:[0-9]+}", authz.Require(engine, perms.ReadGeneral, ""), h.Get, http.MethodGet)
	guard("/roles/{roleId:[0-9]+}", authz.Require(engine, perms.UpdateGeneral, ""), h.Update, http.MethodPatch)
	guard("/roles/{roleId:[0-9]+}", authz.Require(engine, perms.DeleteGeneral, ""), h.Delete, http.MethodDelete)
}
