package internships

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Internship, error)
	Create(ctx context.Context, internship *Internship) (*Internship, error)
	Update(ctx context.Context, internship *Internship) (*Internship, error)
	Delete(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]Internship, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]Internship, error)
	Search(ctx context.Context, filters SearchFilters) ([]Internship, error)
}
