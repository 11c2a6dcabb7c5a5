package sicknotes

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/perms"
)

// RegisterRoutes — больничные за Bearer-фильтром.
func RegisterRoutes(api *mux.Router, svc *Service, engine *authz.Engine) {
	h := NewHandler(svc, engine)

	guard := func(path string, mw mux.MiddlewareFunc, fn http.HandlerFunc, methods ...string) {
		sub := api.PathPrefix(path).Subrouter()
		sub.Use(mw)
		sub.HandleFunc("", fn).Methods(methods...)
	}

	guard("/sick-notes", authz.Require(engine, perms.ReadGeneral, ""), h.List, http.MethodGet)
	guard("/users/{userId:[0-9]+}/sick-notes", authz.Require(engine, perms.ReadGeneral, perms.ReadSelf), h.ListForUser, http.MethodGet)
	guard("/users/{userId:[0-9]+}/sick-notes", authz.Require(engine, perms.CreateSickNoteGeneral, perms.CreateSickNoteSelf), h.Create, http.MethodPost)

	// Без маршрутного guard: владелец определяется по самой записи.
	api.HandleFunc("/sick-notes/{noteId:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
