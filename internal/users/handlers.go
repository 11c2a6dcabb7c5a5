package users

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

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
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

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}
	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}

	// Привилегированные поля (роль, enabled, locked) требуют общего
	// права, даже когда учётка правит сама себя.
	general := false
	if claims, ok := authz.ClaimsFrom(r.Context()); ok {
		var err error
		general, err = h.engine.IsAuthorized(r.Context(), claims.UserID, 0, perms.UpdateGeneral, "")
		if err != nil {
			models.WriteError(w, err)
			return
		}
	}

	u, err := h.svc.Update(r.Context(), id, req, general)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "user deleted")
}
