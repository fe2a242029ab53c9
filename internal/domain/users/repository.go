package users

import "context"

type ListFilters struct {
	Role   string
	Active *bool
}

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filters ListFilters) ([]User, error)
	SetActive(ctx context.Context, id string, active bool) error

	// CreateProfile persists the role-specific variant created at
	// signup. Implementations dispatch on the concrete type.
	CreateProfile(ctx context.Context, profile Profile) error

	ListOrganizationProfiles(ctx context.Context, query string) ([]OrganizationProfile, error)
	GetOrganizationProfileByID(ctx context.Context, id int64) (*OrganizationProfile, error)
}
