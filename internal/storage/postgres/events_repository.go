package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/island-scholars/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, organization_id, title, description, event_type, start_date, end_date,
       location, is_virtual, max_participants, registration_deadline, requirements, prizes,
       tags, status, created_at, updated_at`

func (r *EventRepository) queryer() queryer { return pick(r.pool, r.tx) }

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *events.Event) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (organization_id, title, description, event_type, start_date, end_date,
                    location, is_virtual, max_participants, registration_deadline,
                    requirements, prizes, tags, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING `+eventColumns,
		event.OrganizationID, event.Title, event.Description, string(event.EventType),
		event.StartDate, event.EndDate, event.Location, event.Virtual,
		event.MaxParticipants, event.RegistrationDeadline, event.Requirements,
		event.Prizes, event.Tags, string(event.Status))

	created, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (r *EventRepository) Update(ctx context.Context, event *events.Event) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE events
   SET title = $2, description = $3, event_type = $4, start_date = $5, end_date = $6,
       location = $7, is_virtual = $8, max_participants = $9, registration_deadline = $10,
       requirements = $11, prizes = $12, tags = $13, status = $14, updated_at = now()
 WHERE id = $1
RETURNING `+eventColumns,
		event.ID, event.Title, event.Description, string(event.EventType),
		event.StartDate, event.EndDate, event.Location, event.Virtual,
		event.MaxParticipants, event.RegistrationDeadline, event.Requirements,
		event.Prizes, event.Tags, string(event.Status))

	updated, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListByOrganization(ctx context.Context, organizationID string) ([]events.Event, error) {
	return r.list(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE organization_id = $1
 ORDER BY start_date`, organizationID)
}

func (r *EventRepository) ListActiveStartingAfter(ctx context.Context, after time.Time, limit int) ([]events.Event, error) {
	return r.list(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE status = 'ACTIVE' AND start_date > $1
 ORDER BY start_date
 LIMIT CASE WHEN $2 > 0 THEN $2 END`, after, limit)
}

func (r *EventRepository) list(ctx context.Context, sql string, args ...any) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		out = append(out, *event)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	var eventType, status string
	if err := row.Scan(
		&event.ID,
		&event.OrganizationID,
		&event.Title,
		&event.Description,
		&eventType,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.Virtual,
		&event.MaxParticipants,
		&event.RegistrationDeadline,
		&event.Requirements,
		&event.Prizes,
		&event.Tags,
		&status,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.EventType = events.EventType(eventType)
	event.Status = events.Status(status)
	return &event, nil
}
