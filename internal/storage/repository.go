package storage

import (
	"context"

	"github.com/island-scholars/server/internal/domain/applications"
	"github.com/island-scholars/server/internal/domain/events"
	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/island-scholars/server/internal/domain/universities"
	"github.com/island-scholars/server/internal/domain/users"
)

// Repository groups data access by domain.
type Repository interface {
	Users() users.Repository
	Internships() internships.Repository
	Applications() applications.Repository
	Events() events.Repository
	Universities() universities.Repository

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
