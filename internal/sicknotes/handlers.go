package sicknotes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crewhub/internal/authz"
	"crewhub/internal/models"
	"crewhub/internal/perms"
)

func NewHandler(svc *Service, engine *authz.Engine) *Handler {
	return &Handler{svc: svc, engine: engine}
}

type Handler struct {
	svc    *Service
	engine *authz.Engine
}

func pathVar(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	return uint(id), err == nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(r, "userId")
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	list, err := h.svc.ListForUser(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(r, "userId")
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}
	n, err := h.svc.Create(r.Context(), id, req)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, n)
}

// Delete решает доступ уже по загруженной записи: владелец больничного
// в пути не фигурирует, так что пара прав проверяется здесь, а не
// маршрутным middleware.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(r, "noteId")
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid sick note id", nil)
		return
	}
	claims, ok := authz.ClaimsFrom(r.Context())
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "no authenticated caller", nil)
		return
	}
	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	allowed, err := h.engine.IsAuthorized(r.Context(), claims.UserID, n.UserID,
		perms.DeleteGeneral, perms.DeleteSickNoteSelf)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	if !allowed {
		models.WriteProblem(w, http.StatusForbidden, "Forbidden", "insufficient permissions", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "sick note deleted")
}
