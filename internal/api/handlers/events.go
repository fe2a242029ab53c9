package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListActive(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Upcoming serves the landing-page strip of next events.
func (h *EventsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Upcoming(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.Env)
	if !ok {
		return
	}

	event, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type eventRequest struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description"`
	EventType            string    `json:"eventType" validate:"required"`
	StartDate            time.Time `json:"startDate" validate:"required"`
	EndDate              time.Time `json:"endDate" validate:"required"`
	Location             string    `json:"location"`
	Virtual              bool      `json:"isVirtual"`
	MaxParticipants      *int      `json:"maxParticipants"`
	RegistrationDeadline time.Time `json:"registrationDeadline" validate:"required"`
	Requirements         string    `json:"requirements"`
	Prizes               []string  `json:"prizes"`
	Tags                 []string  `json:"tags"`
	Status               string    `json:"status"`
}

func (h *EventsHandler) params(w http.ResponseWriter, r *http.Request, organizationID string) (events.CreateParams, bool) {
	var req eventRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return events.CreateParams{}, false
	}

	eventType, ok := events.ParseEventType(req.EventType)
	if !ok {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, h.Env,
			problem.WithDetail("unknown event type"))
		return events.CreateParams{}, false
	}

	var status events.Status
	if req.Status != "" {
		status, ok = events.ParseStatus(req.Status)
		if !ok {
			problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, h.Env,
				problem.WithDetail("unknown event status"))
			return events.CreateParams{}, false
		}
	}

	return events.CreateParams{
		OrganizationID:       organizationID,
		Title:                req.Title,
		Description:          req.Description,
		EventType:            eventType,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		Virtual:              req.Virtual,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		Requirements:         req.Requirements,
		Prizes:               req.Prizes,
		Tags:                 req.Tags,
		Status:               status,
	}, true
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
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

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *EventsHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
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

func (h *EventsHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, events.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Event not found", err, h.Env)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
}

func (h *EventsHandler) writeOwnedError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, events.ErrNotOwner) {
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", err, h.Env,
			problem.WithDetail("this event belongs to another organization"))
		return
	}
	h.writeLookupError(w, r, err)
}
