package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/island-scholars/server/internal/audit"
	"github.com/island-scholars/server/internal/auth"
	"github.com/island-scholars/server/internal/config"
	"github.com/island-scholars/server/internal/domain/universities"
	"github.com/island-scholars/server/internal/sanitize"
	"github.com/rs/zerolog"
)

// UniversityDirectory resolves a university by name so a student
// profile can be associated at signup. Unknown names are not an error;
// the profile is simply created without an association.
type UniversityDirectory interface {
	GetByName(ctx context.Context, name string) (*universities.University, error)
}

type Service struct {
	repo         Repository
	universities UniversityDirectory
	jwt          *auth.JWTManager
	auditLogger  *audit.Logger
	logger       zerolog.Logger
}

func NewService(repo Repository, directory UniversityDirectory, jwt *auth.JWTManager, auditLogger *audit.Logger, logger zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		universities: directory,
		jwt:          jwt,
		auditLogger:  auditLogger,
		logger:       logger.With().Str("component", "users").Logger(),
	}
}

// AuthResult is the signin response: a bearer token plus the account
// it identifies.
type AuthResult struct {
	Token string
	User  *User
}

// Authenticate resolves the account by username or email, rejects
// deactivated accounts, verifies the password, and issues a JWT.
func (s *Service) Authenticate(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	user, err := s.repo.GetByUsername(ctx, usernameOrEmail)
	if errors.Is(err, ErrUserNotFound) {
		user, err = s.repo.GetByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDeactivated
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// RegisterParams carries the signup request. Role selects which of the
// role-specific sections is consumed; the others are ignored.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        auth.Role
	PhoneNumber string
	Location    string
	Bio         string

	// Student fields
	University    string
	StudentNumber string
	YearOfStudy   int
	FieldOfStudy  string
	Skills        []string

	// Organization fields
	CompanyName        string
	Industry           string
	CompanySize        string
	Description        string
	Website            string
	FoundedYear        int
	RegistrationNumber string
	DesiredSkills      []string

	// University fields
	UniversityName  string
	EstablishedYear int
	StudentCount    int
	FacultyCount    int
	Programs        []string
}

// Register creates the account and exactly one role-specific profile.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if _, ok := auth.ParseRole(string(params.Role)); !ok {
		return nil, ErrUnknownRole
	}

	taken, err := s.repo.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     strings.TrimSpace(params.Username),
		Email:        strings.TrimSpace(params.Email),
		PasswordHash: hash,
		FirstName:    sanitize.Text(params.FirstName),
		LastName:     sanitize.Text(params.LastName),
		Role:         params.Role,
		PhoneNumber:  sanitize.Text(params.PhoneNumber),
		Location:     sanitize.Text(params.Location),
		Bio:          sanitize.HTML(params.Bio),
		Active:       true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileForRole(ctx, created, params)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if err := s.repo.CreateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("create %s profile: %w", strings.ToLower(string(params.Role)), err)
		}
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("user registered")
	return created, nil
}

// profileForRole builds the single role-specific variant for a new
// account. ADMIN accounts carry no profile.
func (s *Service) profileForRole(ctx context.Context, user *User, params RegisterParams) (Profile, error) {
	switch user.Role {
	case auth.RoleStudent:
		profile := StudentProfile{
			UserID:        user.ID,
			StudentNumber: sanitize.Text(params.StudentNumber),
			YearOfStudy:   params.YearOfStudy,
			FieldOfStudy:  sanitize.Text(params.FieldOfStudy),
			Skills:        sanitize.TextSlice(params.Skills),
		}
		if name := strings.TrimSpace(params.University); name != "" {
			university, err := s.universities.GetByName(ctx, name)
			if err == nil {
				profile.UniversityID = &university.ID
			} else if !errors.Is(err, universities.ErrNotFound) {
				return nil, fmt.Errorf("resolve university: %w", err)
			}
		}
		return profile, nil
	case auth.RoleOrganization:
		return OrganizationProfile{
			UserID:             user.ID,
			CompanyName:        sanitize.Text(params.CompanyName),
			Industry:           sanitize.Text(params.Industry),
			CompanySize:        sanitize.Text(params.CompanySize),
			Description:        sanitize.HTML(params.Description),
			Website:            sanitize.Text(params.Website),
			FoundedYear:        params.FoundedYear,
			RegistrationNumber: sanitize.Text(params.RegistrationNumber),
			DesiredSkills:      sanitize.TextSlice(params.DesiredSkills),
		}, nil
	case auth.RoleUniversity:
		return UniversityProfile{
			UserID:          user.ID,
			Name:            sanitize.Text(params.UniversityName),
			Description:     sanitize.HTML(params.Description),
			Website:         sanitize.Text(params.Website),
			EstablishedYear: params.EstablishedYear,
			StudentCount:    params.StudentCount,
			FacultyCount:    params.FacultyCount,
			Programs:        sanitize.TextSlice(params.Programs),
		}, nil
	case auth.RoleAdmin:
		return nil, nil
	default:
		return nil, ErrUnknownRole
	}
}

// EnsureAdmin is the idempotent startup bootstrap: a single
// conditional insert that guarantees a distinguished admin account
// exists. Unset config skips the bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context, cfg config.AdminBootstrapConfig) error {
	if cfg.Username == "" || cfg.Password == "" || cfg.Email == "" {
		s.logger.Warn().Msg("admin bootstrap env vars not fully set; skipping")
		return nil
	}

	exists, err := s.repo.ExistsByUsername(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if !exists {
		exists, err = s.repo.ExistsByEmail(ctx, cfg.Email)
		if err != nil {
			return fmt.Errorf("check admin email: %w", err)
		}
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		Active:       true,
		Verified:     true,
	}
	if _, err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	s.logger.Info().Str("email", cfg.Email).Msg("bootstrapped admin user")
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]User, error) {
	return s.repo.List(ctx, filters)
}

// SetActive activates or deactivates an account. Admin-only; audited.
func (s *Service) SetActive(ctx context.Context, id string, active bool, changedBy string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	action := "user.deactivated"
	if active {
		action = "user.activated"
	}
	s.auditLogger.LogSuccess(action, changedBy, "user", user.ID, map[string]string{
		"username": user.Username,
		"email":    user.Email,
	})
	return nil
}

func (s *Service) ListOrganizationProfiles(ctx context.Context, query string) ([]OrganizationProfile, error) {
	return s.repo.ListOrganizationProfiles(ctx, query)
}

func (s *Service) GetOrganizationProfileByID(ctx context.Context, id int64) (*OrganizationProfile, error) {
	return s.repo.GetOrganizationProfileByID(ctx, id)
}
