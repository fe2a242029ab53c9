package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/island-scholars/server/internal/audit"
	"github.com/island-scholars/server/internal/auth"
	"github.com/island-scholars/server/internal/config"
	"github.com/island-scholars/server/internal/domain/universities"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID   int
	byID     map[string]User
	profiles []Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]User)}
}

func (r *fakeRepo) Create(_ context.Context, user *User) (*User, error) {
	r.nextID++
	stored := *user
	stored.ID = strings.Repeat("0", 35) + string(rune('a'+r.nextID))
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.byID[stored.ID] = stored
	result := stored
	return &result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	result := stored
	return &result, nil
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, stored := range r.byID {
		if stored.Username == username {
			result := stored
			return &result, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, stored := range r.byID {
		if stored.Email == email {
			result := stored
			return &result, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeRepo) List(_ context.Context, filters ListFilters) ([]User, error) {
	var out []User
	for _, stored := range r.byID {
		if filters.Role != "" && string(stored.Role) != filters.Role {
			continue
		}
		if filters.Active != nil && stored.Active != *filters.Active {
			continue
		}
		out = append(out, stored)
	}
	return out, nil
}

func (r *fakeRepo) SetActive(_ context.Context, id string, active bool) error {
	stored, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	stored.Active = active
	r.byID[id] = stored
	return nil
}

func (r *fakeRepo) CreateProfile(_ context.Context, profile Profile) error {
	r.profiles = append(r.profiles, profile)
	return nil
}

func (r *fakeRepo) ListOrganizationProfiles(_ context.Context, _ string) ([]OrganizationProfile, error) {
	return nil, nil
}

func (r *fakeRepo) GetOrganizationProfileByID(_ context.Context, _ int64) (*OrganizationProfile, error) {
	return nil, nil
}

type fakeUniversities struct {
	byName map[string]universities.University
}

func (d *fakeUniversities) GetByName(_ context.Context, name string) (*universities.University, error) {
	stored, ok := d.byName[name]
	if !ok {
		return nil, universities.ErrNotFound
	}
	result := stored
	return &result, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	directory := &fakeUniversities{byName: map[string]universities.University{
		"State University of Zanzibar": {ID: 42, Name: "State University of Zanzibar"},
	}}
	jwt := auth.NewJWTManager("test-secret", time.Hour, "island-scholars")
	service := NewService(repo, directory, jwt, audit.NewLogger(), zerolog.Nop())
	return service, repo
}

func studentParams() RegisterParams {
	return RegisterParams{
		Username:  "amina",
		Email:     "amina@example.org",
		Password:  "correct horse",
		FirstName: "Amina",
		LastName:  "Khamis",
		Role:      auth.RoleStudent,
	}
}

func TestRegisterCreatesStudentProfile(t *testing.T) {
	service, repo := newTestService()

	params := studentParams()
	params.University = "State University of Zanzibar"
	params.FieldOfStudy = "Marine Biology"

	user, err := service.Register(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, auth.RoleStudent, user.Role)
	require.True(t, user.Active)
	require.NotEqual(t, "correct horse", user.PasswordHash)

	require.Len(t, repo.profiles, 1)
	profile, ok := repo.profiles[0].(StudentProfile)
	require.True(t, ok, "expected a student profile, got %T", repo.profiles[0])
	require.Equal(t, user.ID, profile.UserID)
	require.NotNil(t, profile.UniversityID)
	require.Equal(t, int64(42), *profile.UniversityID)
}

func TestRegisterUnknownUniversityLeavesProfileUnlinked(t *testing.T) {
	service, repo := newTestService()

	params := studentParams()
	params.University = "Nowhere Tech"

	_, err := service.Register(context.Background(), params)
	require.NoError(t, err)

	profile := repo.profiles[0].(StudentProfile)
	require.Nil(t, profile.UniversityID)
}

func TestRegisterDispatchesOnRole(t *testing.T) {
	tests := []struct {
		role auth.Role
		want Profile
	}{
		{auth.RoleStudent, StudentProfile{}},
		{auth.RoleOrganization, OrganizationProfile{}},
		{auth.RoleUniversity, UniversityProfile{}},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			service, repo := newTestService()

			params := studentParams()
			params.Role = tc.role
			params.CompanyName = "Blue Economy Labs"
			params.UniversityName = "Coastal College"

			_, err := service.Register(context.Background(), params)
			require.NoError(t, err)
			require.Len(t, repo.profiles, 1)
			require.IsType(t, tc.want, repo.profiles[0])
		})
	}
}

func TestRegisterAdminHasNoProfile(t *testing.T) {
	service, repo := newTestService()

	params := studentParams()
	params.Role = auth.RoleAdmin

	_, err := service.Register(context.Background(), params)
	require.NoError(t, err)
	require.Empty(t, repo.profiles)
}

func TestRegisterRejectsTakenUsernameAndEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), studentParams())
	require.NoError(t, err)

	dup := studentParams()
	dup.Email = "other@example.org"
	_, err = service.Register(context.Background(), dup)
	require.ErrorIs(t, err, ErrUsernameTaken)

	dup = studentParams()
	dup.Username = "other"
	_, err = service.Register(context.Background(), dup)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service, _ := newTestService()

	params := studentParams()
	params.Role = auth.Role("WIZARD")
	_, err := service.Register(context.Background(), params)
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestAuthenticateByUsernameAndEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), studentParams())
	require.NoError(t, err)

	result, err := service.Authenticate(context.Background(), "amina", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "amina", result.User.Username)

	result, err = service.Authenticate(context.Background(), "amina@example.org", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), studentParams())
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), "amina", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Authenticate(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsDeactivatedAccount(t *testing.T) {
	service, repo := newTestService()

	user, err := service.Register(context.Background(), studentParams())
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(context.Background(), user.ID, false))

	_, err = service.Authenticate(context.Background(), "amina", "correct horse")
	require.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	service, repo := newTestService()

	cfg := config.AdminBootstrapConfig{
		Username: "admin",
		Password: "8Characters**",
		Email:    "admin@islandscholars.org",
	}

	require.NoError(t, service.EnsureAdmin(context.Background(), cfg))
	require.NoError(t, service.EnsureAdmin(context.Background(), cfg))

	admins, err := repo.List(context.Background(), ListFilters{Role: string(auth.RoleAdmin)})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.True(t, admins[0].Active)
	require.True(t, admins[0].Verified)
}

func TestEnsureAdminSkipsWhenUnconfigured(t *testing.T) {
	service, repo := newTestService()

	require.NoError(t, service.EnsureAdmin(context.Background(), config.AdminBootstrapConfig{}))
	require.Empty(t, repo.byID)
}

func TestSetActive(t *testing.T) {
	service, repo := newTestService()

	user, err := service.Register(context.Background(), studentParams())
	require.NoError(t, err)

	require.NoError(t, service.SetActive(context.Background(), user.ID, false, "admin"))
	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, stored.Active)

	require.ErrorIs(t, service.SetActive(context.Background(), "missing", false, "admin"), ErrUserNotFound)
}
