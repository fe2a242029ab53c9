package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/universities"
)

type UniversitiesHandler struct {
	Service *universities.Service
	Env     string
}

func NewUniversitiesHandler(service *universities.Service, env string) *UniversitiesHandler {
	return &UniversitiesHandler{Service: service, Env: env}
}

// List returns all universities, or a name search when ?q= is set.
func (h *UniversitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	list, err := h.Service.List(r.Context(), query)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UniversitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	university, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, university)
}

func (h *UniversitiesHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, h.Env,
			problem.WithDetail("name must not be empty"))
		return
	}

	university, err := h.Service.GetByName(r.Context(), name)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, university)
}

func (h *UniversitiesHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, universities.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "University not found", err, h.Env)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
}
