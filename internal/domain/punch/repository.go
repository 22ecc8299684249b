package punch

import (
	"context"
	"time"
)

// EventRepository is append-only: events are never updated or deleted.
type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)

	// ListByUser returns the user's events with from <= timestamp < to,
	// ordered by timestamp.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]Event, error)

	// ListByOrganization returns every event of the organization's users with
	// from <= timestamp < to, ordered by user then timestamp.
	ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]Event, error)
}
