package payments

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/perms"
)

// RegisterRoutes — выплаты за Bearer-фильтром. Свои выплаты видны по
// READ_SELF, авто-выплата по роли — отдельное право.
func RegisterRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc)

	guard := func(path string, mw mux.MiddlewareFunc, fn http.HandlerFunc, methods ...string) {
		sub := api.PathPrefix(path).Subrouter()
		sub.Use(mw)
		sub.HandleFunc("", fn).Methods(methods...)
	}

	guard("/payments", authz.Require(engine, perms.ReadGeneral, ""), h.List, http.MethodGet)
	guard("/payments/{paymentId:[0-9]+}", authz.Require(engine, perms.DeleteGeneral, ""), h.Delete, http.MethodDelete)
	guard("/users/{userId:[0-9]+}/payments", authz.Require(engine, perms.ReadGeneral, perms.ReadSelf), h.ListForUser, http.MethodGet)
	guard("/users/{userId:[0-9]+}/payment", authz.Require(engine, perms.CreatePaymentGeneral, ""), h.Create, http.MethodPost)
	guard("/roles/{roleId:[0-9]+}/auto-payment", authz.Require(engine, perms.CreatePaymentForRole, ""), h.AutoPayForRole, http.MethodPost)
}
