package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/island-scholars/server/internal/domain/applications"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const applicationColumns = `id, student_id, internship_id, cover_letter, resume_url, portfolio_url,
       availability, preferred_start_date, status, applied_at, reviewed_at, reviewer_notes,
       updated_at`

func (r *ApplicationRepository) queryer() queryer { return pick(r.pool, r.tx) }

// Create relies on the (student_id, internship_id) unique constraint
// to resolve concurrent submissions: the loser comes back as
// ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, application *applications.Application) (*applications.Application, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO applications (student_id, internship_id, cover_letter, resume_url, portfolio_url,
                          availability, preferred_start_date, status, applied_at, reviewer_notes,
                          updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+applicationColumns,
		application.StudentID, application.InternshipID, application.CoverLetter,
		application.ResumeURL, application.PortfolioURL, application.Availability,
		application.PreferredStartDate, string(application.Status), application.AppliedAt,
		application.ReviewerNotes, application.UpdatedAt)

	created, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, applications.ErrDuplicateApplication
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	return created, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*applications.Application, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, applications.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, application *applications.Application) (*applications.Application, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE applications
   SET status = $2, reviewed_at = $3, reviewer_notes = $4, updated_at = $5
 WHERE id = $1
RETURNING `+applicationColumns,
		application.ID, string(application.Status), application.ReviewedAt,
		application.ReviewerNotes, application.UpdatedAt)

	updated, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, applications.ErrNotFound
		}
		return nil, fmt.Errorf("update application: %w", err)
	}
	return updated, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return applications.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]applications.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+`
  FROM applications
 WHERE student_id = $1
 ORDER BY applied_at DESC`, studentID)
}

// ListByOrganization returns every application against any of the
// organization's postings.
func (r *ApplicationRepository) ListByOrganization(ctx context.Context, organizationID string) ([]applications.Application, error) {
	return r.list(ctx, `
SELECT a.id, a.student_id, a.internship_id, a.cover_letter, a.resume_url, a.portfolio_url,
       a.availability, a.preferred_start_date, a.status, a.applied_at, a.reviewed_at,
       a.reviewer_notes, a.updated_at
  FROM applications a
  JOIN internships i ON i.id = a.internship_id
 WHERE i.organization_id = $1
 ORDER BY a.applied_at DESC`, organizationID)
}

func (r *ApplicationRepository) ExistsForStudentAndInternship(ctx context.Context, studentID string, internshipID int64) (bool, error) {
	var found bool
	err := r.queryer().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2)`,
		studentID, internshipID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("application exists: %w", err)
	}
	return found, nil
}

func (r *ApplicationRepository) list(ctx context.Context, sql string, args ...any) ([]applications.Application, error) {
	rows, err := r.queryer().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []applications.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		out = append(out, *application)
	}
	return out, rows.Err()
}

func scanApplication(row pgx.Row) (*applications.Application, error) {
	var application applications.Application
	var status string
	if err := row.Scan(
		&application.ID,
		&application.StudentID,
		&application.InternshipID,
		&application.CoverLetter,
		&application.ResumeURL,
		&application.PortfolioURL,
		&application.Availability,
		&application.PreferredStartDate,
		&status,
		&application.AppliedAt,
		&application.ReviewedAt,
		&application.ReviewerNotes,
		&application.UpdatedAt,
	); err != nil {
		return nil, err
	}
	application.Status = applications.Status(status)
	return &application, nil
}
