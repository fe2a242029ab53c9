package events

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("event not found")
	ErrNotOwner = errors.New("event belongs to another organization")
)

type EventType string

const (
	TypeHackathon   EventType = "HACKATHON"
	TypeCareerFair  EventType = "CAREER_FAIR"
	TypeWorkshop    EventType = "WORKSHOP"
	TypeCompetition EventType = "COMPETITION"
	TypeNetworking  EventType = "NETWORKING"
	TypeConference  EventType = "CONFERENCE"
	TypeSeminar     EventType = "SEMINAR"
	TypeOther       EventType = "OTHER"
)

func ParseEventType(raw string) (EventType, bool) {
	switch EventType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypeHackathon, TypeCareerFair, TypeWorkshop, TypeCompetition,
		TypeNetworking, TypeConference, TypeSeminar, TypeOther:
		return EventType(strings.ToUpper(strings.TrimSpace(raw))), true
	default:
		return "", false
	}
}

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusDraft, StatusActive, StatusCompleted, StatusCancelled:
		return Status(strings.ToUpper(strings.TrimSpace(raw))), true
	default:
		return "", false
	}
}

// Event is an organization-hosted happening: hackathons, career fairs,
// workshops. Draft events stay off the public listing.
type Event struct {
	ID                   int64     `json:"id"`
	OrganizationID       string    `json:"organizationId"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	EventType            EventType `json:"eventType"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	Location             string    `json:"location"`
	Virtual              bool      `json:"isVirtual"`
	MaxParticipants      *int      `json:"maxParticipants,omitempty"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	Requirements         string    `json:"requirements,omitempty"`
	Prizes               []string  `json:"prizes,omitempty"`
	Tags                 []string  `json:"tags,omitempty"`
	Status               Status    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
