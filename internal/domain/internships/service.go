package internships

import (
	"context"
	"errors"
	"time"

	"github.com/island-scholars/server/internal/sanitize"
	"github.com/rs/zerolog"
)

var ErrNotOwner = errors.New("internship belongs to another organization")

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "internships").Logger(),
	}
}

type CreateParams struct {
	OrganizationID      string
	Title               string
	Description         string
	Requirements        string
	Duration            Duration
	Location            string
	Remote              bool
	StipendAmount       *float64
	SkillsRequired      []string
	ApplicationDeadline time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	MaxApplicants       int
	Active              bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Internship, error) {
	if params.MaxApplicants <= 0 {
		params.MaxApplicants = 50
	}

	internship := &Internship{
		OrganizationID:      params.OrganizationID,
		Title:               sanitize.Text(params.Title),
		Description:         sanitize.HTML(params.Description),
		Requirements:        sanitize.HTML(params.Requirements),
		Duration:            params.Duration,
		Location:            sanitize.Text(params.Location),
		Remote:              params.Remote,
		StipendAmount:       params.StipendAmount,
		SkillsRequired:      sanitize.TextSlice(params.SkillsRequired),
		ApplicationDeadline: params.ApplicationDeadline,
		StartDate:           params.StartDate,
		EndDate:             params.EndDate,
		MaxApplicants:       params.MaxApplicants,
		Active:              params.Active,
	}

	created, err := s.repo.Create(ctx, internship)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("internship_id", created.ID).
		Str("organization_id", created.OrganizationID).
		Str("title", created.Title).
		Msg("internship created")
	return created, nil
}

// Update replaces the mutable fields of a posting. The caller must be
// the owning organization.
func (s *Service) Update(ctx context.Context, id int64, requesterID string, params CreateParams) (*Internship, error) {
	internship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if internship.OrganizationID != requesterID {
		return nil, ErrNotOwner
	}

	internship.Title = sanitize.Text(params.Title)
	internship.Description = sanitize.HTML(params.Description)
	internship.Requirements = sanitize.HTML(params.Requirements)
	internship.Duration = params.Duration
	internship.Location = sanitize.Text(params.Location)
	internship.Remote = params.Remote
	internship.StipendAmount = params.StipendAmount
	internship.SkillsRequired = sanitize.TextSlice(params.SkillsRequired)
	internship.ApplicationDeadline = params.ApplicationDeadline
	internship.StartDate = params.StartDate
	internship.EndDate = params.EndDate
	if params.MaxApplicants > 0 {
		internship.MaxApplicants = params.MaxApplicants
	}
	internship.Active = params.Active

	return s.repo.Update(ctx, internship)
}

func (s *Service) Delete(ctx context.Context, id int64, requesterID string) error {
	internship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if internship.OrganizationID != requesterID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Internship, error) {
	return s.repo.GetByID(ctx, id)
}

// List serves the public listing. Without filters it returns open
// postings still accepting applications; with any filter set it
// searches across all active postings.
func (s *Service) List(ctx context.Context, filters SearchFilters) ([]Internship, error) {
	if filters.Empty() {
		return s.repo.ListActive(ctx)
	}
	return s.repo.Search(ctx, filters)
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]Internship, error) {
	return s.repo.ListByOrganization(ctx, organizationID)
}
