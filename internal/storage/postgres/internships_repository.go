package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/jackc/pgx/v5"
)

const internshipColumns = `id, organization_id, title, description, requirements, duration,
       location, is_remote, stipend_amount, skills_required, application_deadline,
       start_date, end_date, max_applicants, is_active, created_at, updated_at`

func (r *InternshipRepository) queryer() queryer { return pick(r.pool, r.tx) }

func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*internships.Internship, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
	internship, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internships.ErrNotFound
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}
	return internship, nil
}

func (r *InternshipRepository) Create(ctx context.Context, internship *internships.Internship) (*internships.Internship, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO internships (organization_id, title, description, requirements, duration, location,
                         is_remote, stipend_amount, skills_required, application_deadline,
                         start_date, end_date, max_applicants, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING `+internshipColumns,
		internship.OrganizationID, internship.Title, internship.Description,
		internship.Requirements, string(internship.Duration), internship.Location,
		internship.Remote, internship.StipendAmount, internship.SkillsRequired,
		internship.ApplicationDeadline, internship.StartDate, internship.EndDate,
		internship.MaxApplicants, internship.Active)

	created, err := scanInternship(row)
	if err != nil {
		return nil, fmt.Errorf("create internship: %w", err)
	}
	return created, nil
}

func (r *InternshipRepository) Update(ctx context.Context, internship *internships.Internship) (*internships.Internship, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE internships
   SET title = $2, description = $3, requirements = $4, duration = $5, location = $6,
       is_remote = $7, stipend_amount = $8, skills_required = $9, application_deadline = $10,
       start_date = $11, end_date = $12, max_applicants = $13, is_active = $14,
       updated_at = now()
 WHERE id = $1
RETURNING `+internshipColumns,
		internship.ID, internship.Title, internship.Description, internship.Requirements,
		string(internship.Duration), internship.Location, internship.Remote,
		internship.StipendAmount, internship.SkillsRequired, internship.ApplicationDeadline,
		internship.StartDate, internship.EndDate, internship.MaxApplicants, internship.Active)

	updated, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internships.ErrNotFound
		}
		return nil, fmt.Errorf("update internship: %w", err)
	}
	return updated, nil
}

func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete internship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return internships.ErrNotFound
	}
	return nil
}

// ListActive excludes postings whose application deadline has passed.
func (r *InternshipRepository) ListActive(ctx context.Context) ([]internships.Internship, error) {
	return r.list(ctx, `
SELECT `+internshipColumns+`
  FROM internships
 WHERE is_active
   AND application_deadline >= now()
 ORDER BY created_at DESC`)
}

func (r *InternshipRepository) ListByOrganization(ctx context.Context, organizationID string) ([]internships.Internship, error) {
	return r.list(ctx, `
SELECT `+internshipColumns+`
  FROM internships
 WHERE organization_id = $1
 ORDER BY created_at DESC`, organizationID)
}

// Search applies only the filters the caller set. Absent filters match
// everything; only active postings are searchable.
func (r *InternshipRepository) Search(ctx context.Context, filters internships.SearchFilters) ([]internships.Internship, error) {
	var duration *string
	if filters.Duration != nil {
		value := string(*filters.Duration)
		duration = &value
	}
	return r.list(ctx, `
SELECT `+internshipColumns+`
  FROM internships
 WHERE is_active
   AND ($1 = '' OR title ILIKE '%' || $1 || '%')
   AND ($2 = '' OR location ILIKE '%' || $2 || '%')
   AND ($3::text IS NULL OR duration = $3)
   AND ($4::boolean IS NULL OR is_remote = $4)
 ORDER BY created_at DESC`,
		filters.Title, filters.Location, duration, filters.Remote)
}

func (r *InternshipRepository) list(ctx context.Context, sql string, args ...any) ([]internships.Internship, error) {
	rows, err := r.queryer().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()

	var out []internships.Internship
	for rows.Next() {
		internship, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("list internships: %w", err)
		}
		out = append(out, *internship)
	}
	return out, rows.Err()
}

func scanInternship(row pgx.Row) (*internships.Internship, error) {
	var internship internships.Internship
	var duration string
	if err := row.Scan(
		&internship.ID,
		&internship.OrganizationID,
		&internship.Title,
		&internship.Description,
		&internship.Requirements,
		&duration,
		&internship.Location,
		&internship.Remote,
		&internship.StipendAmount,
		&internship.SkillsRequired,
		&internship.ApplicationDeadline,
		&internship.StartDate,
		&internship.EndDate,
		&internship.MaxApplicants,
		&internship.Active,
		&internship.CreatedAt,
		&internship.UpdatedAt,
	); err != nil {
		return nil, err
	}
	internship.Duration = internships.Duration(duration)
	return &internship, nil
}
