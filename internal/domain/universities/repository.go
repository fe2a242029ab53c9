package universities

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*University, error)
	GetByName(ctx context.Context, name string) (*University, error)
	List(ctx context.Context) ([]University, error)

	// Search matches university names by case-insensitive substring.
	Search(ctx context.Context, name string) ([]University, error)
}
