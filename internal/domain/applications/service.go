package applications

import (
	"context"
	"fmt"
	"time"

	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/island-scholars/server/internal/sanitize"
	"github.com/rs/zerolog"
)

// InternshipDirectory is the slice of the internships domain the
// lifecycle manager needs: deadline and ownership lookups.
type InternshipDirectory interface {
	GetByID(ctx context.Context, id int64) (*internships.Internship, error)
}

// Notifier receives the fire-and-forget "new application" signal.
// Implementations must not block the caller and must swallow their own
// failures.
type Notifier interface {
	ApplicationCreated(application *Application)
}

type Service struct {
	repo        Repository
	internships InternshipDirectory
	notifier    Notifier
	logger      zerolog.Logger
}

func NewService(repo Repository, directory InternshipDirectory, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		internships: directory,
		notifier:    notifier,
		logger:      logger.With().Str("component", "applications").Logger(),
	}
}

type CreateParams struct {
	StudentID          string
	InternshipID       int64
	CoverLetter        string
	ResumeURL          string
	PortfolioURL       string
	Availability       string
	PreferredStartDate *time.Time
}

// Create validates the posting is open, enforces the one-application-
// per-pair invariant, and persists a PENDING application. The listener
// notification is dispatched after the write and never affects the
// returned result.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Application, error) {
	internship, err := s.internships.GetByID(ctx, params.InternshipID)
	if err != nil {
		return nil, err
	}

	if !internship.Active {
		return nil, ErrInternshipInactive
	}
	if !internship.AcceptsApplicationsOn(time.Now()) {
		return nil, ErrDeadlinePassed
	}

	// Friendly pre-check. The unique constraint in the store remains
	// authoritative under concurrent creates.
	exists, err := s.repo.ExistsForStudentAndInternship(ctx, params.StudentID, params.InternshipID)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	now := time.Now().UTC()
	application := &Application{
		StudentID:          params.StudentID,
		InternshipID:       params.InternshipID,
		CoverLetter:        sanitize.HTML(params.CoverLetter),
		ResumeURL:          sanitize.Text(params.ResumeURL),
		PortfolioURL:       sanitize.Text(params.PortfolioURL),
		Availability:       sanitize.Text(params.Availability),
		PreferredStartDate: params.PreferredStartDate,
		Status:             StatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.repo.Create(ctx, application)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ApplicationCreated(created)
	}

	s.logger.Info().
		Int64("application_id", created.ID).
		Str("student_id", created.StudentID).
		Int64("internship_id", created.InternshipID).
		Msg("application created")
	return created, nil
}

// UpdateStatus sets status and reviewer notes. Ownership of the
// referenced internship is enforced upstream by the handler's guard.
// ReviewedAt is stamped only when the new status is a review decision.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status, reviewerNotes string) (*Application, error) {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	application.Status = status
	application.ReviewerNotes = sanitize.Text(reviewerNotes)
	if status.ReviewDecision() {
		reviewedAt := time.Now().UTC()
		application.ReviewedAt = &reviewedAt
	}
	application.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, application)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("application_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("application status updated")
	return updated, nil
}

// Withdraw moves a PENDING or UNDER_REVIEW application to WITHDRAWN.
// Only the owning student may withdraw, and ownership is checked
// before the status so a foreign requester learns nothing about state.
func (s *Service) Withdraw(ctx context.Context, id int64, requestingStudentID string) (*Application, error) {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if application.StudentID != requestingStudentID {
		return nil, ErrNotOwner
	}
	if !application.Status.Withdrawable() {
		return nil, ErrInvalidTransition
	}

	application.Status = StatusWithdrawn
	application.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, application)
}

// Delete hard-deletes by id. The handler's guard decides who may call
// this (student owner or organization owner).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]Application, error) {
	return s.repo.ListByOrganization(ctx, organizationID)
}

// IsParty reports whether the user is the applicant or owns the
// referenced internship. Used for the dual-permission view/delete
// endpoints.
func (s *Service) IsParty(ctx context.Context, application *Application, userID string) (bool, error) {
	if application.StudentID == userID {
		return true, nil
	}
	return s.IsInternshipOwner(ctx, application, userID)
}

// IsInternshipOwner reports whether the user owns the internship the
// application targets.
func (s *Service) IsInternshipOwner(ctx context.Context, application *Application, userID string) (bool, error) {
	internship, err := s.internships.GetByID(ctx, application.InternshipID)
	if err != nil {
		return false, fmt.Errorf("load internship for authorization: %w", err)
	}
	return internship.OrganizationID == userID, nil
}
