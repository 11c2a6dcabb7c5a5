package accmgmt

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

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}
	tok, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, authResponse{Token: tok})
}

// EnableAccount принимает код и в query (ссылка из письма), и в теле.
func (h *Handler) EnableAccount(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		var req struct {
			Code string `json:"code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			code = req.Code
		}
	}
	if code == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "code is required", nil)
		return
	}
	if err := h.svc.EnableAccount(r.Context(), code); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "account enabled")
}

func (h *Handler) RequestRecovery(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := h.svc.RequestRecovery(r.Context(), email); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "recovery code sent")
}

type resetRequest struct {
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword принимает код и в query (ссылка из письма), и в теле.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}
	if code := r.URL.Query().Get("code"); code != "" {
		req.Code = code
	}
	if err := h.svc.ResetPassword(r.Context(), req.Code, req.Password, req.ConfirmPassword); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "password updated")
}

func (h *Handler) CreateSuperUser(w http.ResponseWriter, r *http.Request) {
	var req SuperUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return
	}
	u, err := h.svc.CreateSuperUser(r.Context(), req)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid user id", nil)
		return
	}
	if err := h.svc.Unlock(r.Context(), uint(id)); err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "account unlocked")
}
