package absence

import (
	"context"
	"time"
)

type IntervalRepository interface {
	// ListByUser returns vacations first, then other absences, each ordered
	// by start date, for intervals intersecting [from, to].
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]Interval, error)
}

type HolidayRepository interface {
	// ListByOrganization returns national holidays plus the organization's
	// own within [from, to].
	ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]Holiday, error)
}
