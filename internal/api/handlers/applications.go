package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/applications"
	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/island-scholars/server/internal/metrics"
)

type ApplicationsHandler struct {
	Service *applications.Service
	Env     string
}

func NewApplicationsHandler(service *applications.Service, env string) *ApplicationsHandler {
	return &ApplicationsHandler{Service: service, Env: env}
}

type createApplicationRequest struct {
	InternshipID       int64      `json:"internshipId" validate:"required,gt=0"`
	CoverLetter        string     `json:"coverLetter" validate:"required"`
	ResumeURL          string     `json:"resumeUrl"`
	PortfolioURL       string     `json:"portfolioUrl"`
	Availability       string     `json:"availability"`
	PreferredStartDate *time.Time `json:"preferredStartDate"`
}

// Create submits an application for the authenticated student.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}

	var req createApplicationRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	created, err := h.Service.Create(r.Context(), applications.CreateParams{
		StudentID:          principal.UserID,
		InternshipID:       req.InternshipID,
		CoverLetter:        req.CoverLetter,
		ResumeURL:          req.ResumeURL,
		PortfolioURL:       req.PortfolioURL,
		Availability:       req.Availability,
		PreferredStartDate: req.PreferredStartDate,
	})
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	metrics.ApplicationsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, created)
}

func (h *ApplicationsHandler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, internships.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Internship not found", err, h.Env)
	case errors.Is(err, applications.ErrInternshipInactive):
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Internship inactive", err, h.Env,
			problem.WithDetail("this internship is no longer accepting applications"))
	case errors.Is(err, applications.ErrDeadlinePassed):
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Deadline passed", err, h.Env,
			problem.WithDetail("the application deadline for this internship has passed"))
	case errors.Is(err, applications.ErrDuplicateApplication):
		problem.Write(w, r, http.StatusConflict, typeConflict, "Already applied", err, h.Env,
			problem.WithDetail("you have already applied to this internship"))
	default:
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
	}
}

// MyApplications lists the authenticated student's applications.
func (h *ApplicationsHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}

	list, err := h.Service.ListByStudent(r.Context(), principal.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Received lists applications against the authenticated organization's
// postings.
func (h *ApplicationsHandler) Received(w http.ResponseWriter, r *http.Request) {
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

// Get returns one application to either party: the applicant or the
// organization owning the internship.
func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	application, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	party, err := h.Service.IsParty(r.Context(), application, principal.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	if !party {
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", nil, h.Env,
			problem.WithDetail("you are not a party to this application"))
		return
	}

	writeJSON(w, http.StatusOK, application)
}

type updateStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	ReviewerNotes string `json:"reviewerNotes"`
}

// UpdateStatus lets the organization owning the internship move the
// application through its lifecycle.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	status, ok := applications.ParseStatus(req.Status)
	if !ok {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, h.Env,
			problem.WithDetail("unknown application status"))
		return
	}

	application, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	owner, err := h.Service.IsInternshipOwner(r.Context(), application, principal.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	if !owner {
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", nil, h.Env,
			problem.WithDetail("only the posting organization may review this application"))
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), id, status, req.ReviewerNotes)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	metrics.ApplicationStatusChanges.WithLabelValues(string(updated.Status)).Inc()
	writeJSON(w, http.StatusOK, updated)
}

// Withdraw moves the authenticated student's application to WITHDRAWN.
func (h *ApplicationsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	updated, err := h.Service.Withdraw(r.Context(), id, principal.UserID)
	if err != nil {
		switch {
		case errors.Is(err, applications.ErrNotFound):
			problem.Write(w, r, http.StatusNotFound, typeNotFound, "Application not found", err, h.Env)
		case errors.Is(err, applications.ErrNotOwner):
			problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", err, h.Env,
				problem.WithDetail("only the applicant may withdraw an application"))
		case errors.Is(err, applications.ErrInvalidTransition):
			problem.Write(w, r, http.StatusConflict, typeConflict, "Invalid transition", err, h.Env,
				problem.WithDetail("only pending or under-review applications can be withdrawn"))
		default:
			problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		}
		return
	}

	metrics.ApplicationStatusChanges.WithLabelValues(string(updated.Status)).Inc()
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an application. Either party may delete.
func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r, h.Env)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	application, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	party, err := h.Service.IsParty(r.Context(), application, principal.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	if !party {
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", nil, h.Env,
			problem.WithDetail("you are not a party to this application"))
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApplicationsHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, applications.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Application not found", err, h.Env)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
}
