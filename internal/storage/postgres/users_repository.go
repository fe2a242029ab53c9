package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/island-scholars/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, role,
       phone_number, location, bio, is_active, is_verified, created_at, updated_at`

func (r *UserRepository) queryer() queryer { return pick(r.pool, r.tx) }

func (r *UserRepository) Create(ctx context.Context, user *users.User) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO users (username, email, password_hash, first_name, last_name, role,
                   phone_number, location, bio, is_active, is_verified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+userColumns, user.Username, user.Email, user.PasswordHash, user.FirstName,
		user.LastName, string(user.Role), user.PhoneNumber, user.Location, user.Bio,
		user.Active, user.Verified)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return nil, users.ErrUsernameTaken
			case "users_email_key":
				return nil, users.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*users.User, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1 LIMIT 1`, value)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *UserRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var found bool
	err := r.queryer().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE `+column+` = $1)`, value).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("user exists by %s: %w", column, err)
	}
	return found, nil
}

func (r *UserRepository) List(ctx context.Context, filters users.ListFilters) ([]users.User, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+userColumns+`
  FROM users
 WHERE ($1 = '' OR role = $1)
   AND ($2::boolean IS NULL OR is_active = $2)
 ORDER BY created_at DESC`, filters.Role, filters.Active)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []users.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, *user)
	}
	return out, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.queryer().Exec(ctx,
		`UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

// CreateProfile dispatches on the concrete profile variant. University
// accounts land in the universities table, which doubles as the public
// directory.
func (r *UserRepository) CreateProfile(ctx context.Context, profile users.Profile) error {
	q := r.queryer()
	switch p := profile.(type) {
	case users.StudentProfile:
		_, err := q.Exec(ctx, `
INSERT INTO student_profiles (user_id, student_number, year_of_study, field_of_study, skills, university_id)
VALUES ($1, $2, $3, $4, $5, $6)`,
			p.UserID, p.StudentNumber, p.YearOfStudy, p.FieldOfStudy, p.Skills, p.UniversityID)
		if err != nil {
			return fmt.Errorf("create student profile: %w", err)
		}
		return nil
	case users.OrganizationProfile:
		_, err := q.Exec(ctx, `
INSERT INTO organization_profiles (user_id, company_name, industry, company_size, description,
                                   website, founded_year, registration_number, desired_skills)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.UserID, p.CompanyName, p.Industry, p.CompanySize, p.Description,
			p.Website, p.FoundedYear, p.RegistrationNumber, p.DesiredSkills)
		if err != nil {
			return fmt.Errorf("create organization profile: %w", err)
		}
		return nil
	case users.UniversityProfile:
		_, err := q.Exec(ctx, `
INSERT INTO universities (user_id, name, description, website, established_year,
                          student_count, faculty_count, programs)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO UPDATE
   SET user_id = EXCLUDED.user_id,
       description = EXCLUDED.description,
       website = EXCLUDED.website,
       updated_at = now()`,
			p.UserID, p.Name, p.Description, p.Website, p.EstablishedYear,
			p.StudentCount, p.FacultyCount, p.Programs)
		if err != nil {
			return fmt.Errorf("create university profile: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("create profile: unsupported variant %T", profile)
	}
}

const organizationProfileColumns = `id, user_id, company_name, industry, company_size, description,
       website, founded_year, registration_number, desired_skills`

func (r *UserRepository) ListOrganizationProfiles(ctx context.Context, query string) ([]users.OrganizationProfile, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+organizationProfileColumns+`
  FROM organization_profiles
 WHERE $1 = '' OR company_name ILIKE '%' || $1 || '%'
 ORDER BY company_name`, query)
	if err != nil {
		return nil, fmt.Errorf("list organization profiles: %w", err)
	}
	defer rows.Close()

	var out []users.OrganizationProfile
	for rows.Next() {
		profile, err := scanOrganizationProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("list organization profiles: %w", err)
		}
		out = append(out, *profile)
	}
	return out, rows.Err()
}

func (r *UserRepository) GetOrganizationProfileByID(ctx context.Context, id int64) (*users.OrganizationProfile, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+organizationProfileColumns+` FROM organization_profiles WHERE id = $1`, id)
	profile, err := scanOrganizationProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("get organization profile: %w", err)
	}
	return profile, nil
}

func scanUser(row pgx.Row) (*users.User, error) {
	var user users.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.PhoneNumber,
		&user.Location,
		&user.Bio,
		&user.Active,
		&user.Verified,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = authRole(role)
	return &user, nil
}

func scanOrganizationProfile(row pgx.Row) (*users.OrganizationProfile, error) {
	var profile users.OrganizationProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.Industry,
		&profile.CompanySize,
		&profile.Description,
		&profile.Website,
		&profile.FoundedYear,
		&profile.RegistrationNumber,
		&profile.DesiredSkills,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
