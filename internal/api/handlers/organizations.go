package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/users"
)

// OrganizationsHandler serves the public organization directory, which
// is backed by organization profiles.
type OrganizationsHandler struct {
	Users *users.Service
	Env   string
}

func NewOrganizationsHandler(service *users.Service, env string) *OrganizationsHandler {
	return &OrganizationsHandler{Users: service, Env: env}
}

func (h *OrganizationsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	list, err := h.Users.ListOrganizationProfiles(r.Context(), query)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrganizationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	profile, err := h.Users.GetOrganizationProfileByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			problem.Write(w, r, http.StatusNotFound, typeNotFound, "Organization not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
