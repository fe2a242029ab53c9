package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/island-scholars/server/internal/auth"
	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/island-scholars/server/internal/domain/users"
	"github.com/island-scholars/server/internal/storage"
	"github.com/island-scholars/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type testEnv struct {
	Context context.Context
	Pool    *pgxpool.Pool
	Repo    storage.Repository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("scholars"),
		tcpostgres.WithUsername("scholars"),
		tcpostgres.WithPassword("scholars_dev"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsPath := filepath.Join(projectRoot(t), "internal", "storage", "postgres", "migrations")
	require.NoError(t, migrateWithRetry(dbURL, migrationsPath, 10*time.Second))

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo, err := postgres.NewRepository(pool)
	require.NoError(t, err)

	return &testEnv{
		Context: ctx,
		Pool:    pool,
		Repo:    repo,
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func migrateWithRetry(databaseURL string, migrationsPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := postgres.MigrateUp(databaseURL, migrationsPath); err != nil {
			if time.Now().After(deadline) {
				return err
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil
	}
}

func seedUser(t *testing.T, env *testEnv, username string, role auth.Role) *users.User {
	t.Helper()
	created, err := env.Repo.Users().Create(env.Context, &users.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Active:       true,
	})
	require.NoError(t, err)
	return created
}

func seedInternship(t *testing.T, env *testEnv, organizationID string, mutate func(*internships.Internship)) *internships.Internship {
	t.Helper()
	posting := &internships.Internship{
		OrganizationID:      organizationID,
		Title:               "Marine Data Intern",
		Description:         "Collect reef survey data.",
		Duration:            internships.DurationThreeMonths,
		Location:            "Stone Town",
		SkillsRequired:      []string{"Go"},
		ApplicationDeadline: time.Now().UTC().AddDate(0, 1, 0),
		MaxApplicants:       50,
		Active:              true,
	}
	if mutate != nil {
		mutate(posting)
	}
	created, err := env.Repo.Internships().Create(env.Context, posting)
	require.NoError(t, err)
	return created
}
