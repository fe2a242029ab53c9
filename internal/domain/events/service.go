package events

import (
	"context"
	"time"

	"github.com/island-scholars/server/internal/sanitize"
	"github.com/rs/zerolog"
)

// upcomingLimit caps the landing-page upcoming list.
const upcomingLimit = 6

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

type CreateParams struct {
	OrganizationID       string
	Title                string
	Description          string
	EventType            EventType
	StartDate            time.Time
	EndDate              time.Time
	Location             string
	Virtual              bool
	MaxParticipants      *int
	RegistrationDeadline time.Time
	Requirements         string
	Prizes               []string
	Tags                 []string
	Status               Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	status := params.Status
	if status == "" {
		status = StatusDraft
	}

	event := &Event{
		OrganizationID:       params.OrganizationID,
		Title:                sanitize.Text(params.Title),
		Description:          sanitize.HTML(params.Description),
		EventType:            params.EventType,
		StartDate:            params.StartDate,
		EndDate:              params.EndDate,
		Location:             sanitize.Text(params.Location),
		Virtual:              params.Virtual,
		MaxParticipants:      params.MaxParticipants,
		RegistrationDeadline: params.RegistrationDeadline,
		Requirements:         sanitize.HTML(params.Requirements),
		Prizes:               sanitize.TextSlice(params.Prizes),
		Tags:                 sanitize.TextSlice(params.Tags),
		Status:               status,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("event_id", created.ID).
		Str("organization_id", created.OrganizationID).
		Str("type", string(created.EventType)).
		Msg("event created")
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, requesterID string, params CreateParams) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizationID != requesterID {
		return nil, ErrNotOwner
	}

	event.Title = sanitize.Text(params.Title)
	event.Description = sanitize.HTML(params.Description)
	event.EventType = params.EventType
	event.StartDate = params.StartDate
	event.EndDate = params.EndDate
	event.Location = sanitize.Text(params.Location)
	event.Virtual = params.Virtual
	event.MaxParticipants = params.MaxParticipants
	event.RegistrationDeadline = params.RegistrationDeadline
	event.Requirements = sanitize.HTML(params.Requirements)
	event.Prizes = sanitize.TextSlice(params.Prizes)
	event.Tags = sanitize.TextSlice(params.Tags)
	if params.Status != "" {
		event.Status = params.Status
	}

	return s.repo.Update(ctx, event)
}

func (s *Service) Delete(ctx context.Context, id int64, requesterID string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizationID != requesterID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// ListActive returns ACTIVE events that have not started yet.
func (s *Service) ListActive(ctx context.Context) ([]Event, error) {
	return s.repo.ListActiveStartingAfter(ctx, time.Now(), 0)
}

// Upcoming returns the next few ACTIVE events for the landing page.
func (s *Service) Upcoming(ctx context.Context) ([]Event, error) {
	return s.repo.ListActiveStartingAfter(ctx, time.Now(), upcomingLimit)
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]Event, error) {
	return s.repo.ListByOrganization(ctx, organizationID)
}
