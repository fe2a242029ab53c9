package events

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, event *Event) (*Event, error)
	Update(ctx context.Context, event *Event) (*Event, error)
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, organizationID string) ([]Event, error)

	// ListActiveStartingAfter returns ACTIVE events whose start date is
	// after the given instant, soonest first. limit <= 0 means no limit.
	ListActiveStartingAfter(ctx context.Context, after time.Time, limit int) ([]Event, error)
}
