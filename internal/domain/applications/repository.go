package applications

import "context"

// Repository is the entity-store contract for applications. Create
// must surface ErrDuplicateApplication when the (student, internship)
// unique constraint trips, so concurrent creates for the same pair
// resolve to exactly one winner.
type Repository interface {
	Create(ctx context.Context, application *Application) (*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	Update(ctx context.Context, application *Application) (*Application, error)
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]Application, error)
	ExistsForStudentAndInternship(ctx context.Context, studentID string, internshipID int64) (bool, error)
}
