package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/island-scholars/server/internal/domain/universities"
	"github.com/jackc/pgx/v5"
)

const universityColumns = `id, user_id, name, description, website, established_year,
       student_count, faculty_count, programs, created_at, updated_at`

func (r *UniversityRepository) queryer() queryer { return pick(r.pool, r.tx) }

func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*universities.University, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+universityColumns+` FROM universities WHERE id = $1`, id)
	return wrapScanUniversity(row, "get university")
}

func (r *UniversityRepository) GetByName(ctx context.Context, name string) (*universities.University, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+universityColumns+` FROM universities WHERE lower(name) = lower($1) LIMIT 1`, name)
	return wrapScanUniversity(row, "get university by name")
}

func (r *UniversityRepository) List(ctx context.Context) ([]universities.University, error) {
	return r.list(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY name`)
}

func (r *UniversityRepository) Search(ctx context.Context, name string) ([]universities.University, error) {
	return r.list(ctx, `
SELECT `+universityColumns+`
  FROM universities
 WHERE name ILIKE '%' || $1 || '%'
 ORDER BY name`, name)
}

func (r *UniversityRepository) list(ctx context.Context, sql string, args ...any) ([]universities.University, error) {
	rows, err := r.queryer().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	defer rows.Close()

	var out []universities.University
	for rows.Next() {
		university, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("list universities: %w", err)
		}
		out = append(out, *university)
	}
	return out, rows.Err()
}

func wrapScanUniversity(row pgx.Row, op string) (*universities.University, error) {
	university, err := scanUniversity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, universities.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return university, nil
}

func scanUniversity(row pgx.Row) (*universities.University, error) {
	var university universities.University
	if err := row.Scan(
		&university.ID,
		&university.UserID,
		&university.Name,
		&university.Description,
		&university.Website,
		&university.EstablishedYear,
		&university.StudentCount,
		&university.FacultyCount,
		&university.Programs,
		&university.CreatedAt,
		&university.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &university, nil
}
