package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/internships"
)

type InternshipsHandler struct {
	Service *internships.Service
	Env     string
}

func NewInternshipsHandler(service *internships.Service, env string) *InternshipsHandler {
	return &InternshipsHandler{Service: service, Env: env}
}

// List serves the public listing. With any filter parameters present
// it becomes a search; otherwise it returns all active postings.
func (h *InternshipsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := internships.ParseSearchFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	list, err := h.Service.List(r.Context(), filters)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InternshipsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	internship, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, internship)
}

type internshipRequest struct {
	Title               string     `json:"title" validate:"required"`
	Description         string     `json:"description" validate:"required"`
	Requirements        string     `json:"requirements"`
	Duration            string     `json:"duration" validate:"required"`
	Location            string     `json:"location"`
	Remote              bool       `json:"isRemote"`
	StipendAmount       *float64   `json:"stipendAmount"`
	SkillsRequired      []string   `json:"skillsRequired"`
	ApplicationDeadline time.Time  `json:"applicationDeadline" validate:"required"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	MaxApplicants       int        `json:"maxApplicants"`
	Active              *bool      `json:"isActive"`
}

func (h *InternshipsHandler) params(w http.ResponseWriter, r *http.Request, organizationID string) (internships.CreateParams, bool) {
	var req internshipRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return internships.CreateParams{}, false
	}

	duration, ok := internships.ParseDuration(req.Duration)
	if !ok {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, h.Env,
			problem.WithDetail("unknown duration category"))
		return internships.CreateParams{}, false
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return internships.CreateParams{
		OrganizationID:      organizationID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Duration:            duration,
		Location:            req.Location,
		Remote:              req.Remote,
		StipendAmount:       req.StipendAmount,
		SkillsRequired:      req.SkillsRequired,
		ApplicationDeadline: req.ApplicationDeadline,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		MaxApplicants:       req.MaxApplicants,
		Active:              active,
	}, true
}

func (h *InternshipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	params, ok := h.params(w, r, principal.UserID)
	if !ok {
		return
	}

	created, err := h.Service.Create(r.Context(), params)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *InternshipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}
	params, ok := h.params(w, r, principal.UserID)
	if !ok {
		return
	}

	updated, err := h.Service.Update(r.Context(), id, principal.UserID, params)
	if err != nil {
		h.writeOwnedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *InternshipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id, principal.UserID); err != nil {
		h.writeOwnedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyInternships lists the authenticated organization's own postings,
// active or not.
func (h *InternshipsHandler) MyInternships(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}

	list, err := h.Service.ListByOrganization(r.Context(), principal.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InternshipsHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, internships.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Internship not found", err, h.Env)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
}

func (h *InternshipsHandler) writeOwnedError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, internships.ErrNotOwner) {
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", err, h.Env,
			problem.WithDetail("this posting belongs to another organization"))
		return
	}
	h.writeLookupError(w, r, err)
}
