package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/users"
)

// UsersHandler is the admin account-management surface.
type UsersHandler struct {
	Users *users.Service
	Env   string
}

func NewUsersHandler(service *users.Service, env string) *UsersHandler {
	return &UsersHandler{Users: service, Env: env}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := users.ListFilters{
		Role: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("role"))),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("isActive")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env,
				problem.WithDetail("isActive must be true or false"))
			return
		}
		filters.Active = &active
	}

	list, err := h.Users.List(r.Context(), filters)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *UsersHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UsersHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))

	if err := h.Users.SetActive(r.Context(), id, active, principal.UserID); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, users.ErrUserNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "User not found", err, h.Env)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
}
