package payments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crewhub/internal/models"
)

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

type Handler struct {
	svc *Service
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
	p, err := h.svc.Create(r.Context(), id, req)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) AutoPayForRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(r, "roleId")
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid role id", nil)
		return
	}
	batch, err := h.svc.AutoPayForRole(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, batch)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(r, "paymentId")
	if !ok {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid payment id", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "payment deleted")
}
