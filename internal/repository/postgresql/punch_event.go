package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchEventRepositoryImpl struct {
	db *database.DB
}

const punchEventColumns = `
	id, user_id, organization_id, type, timestamp,
	latitude, longitude, distance_meters, created_at
`

// Create implements punch.EventRepository. Concurrent submissions of the
// same user are serialized, and a second punch of a type already recorded
// on the event's local date is refused with punch.ErrPunchAlreadyRecorded.
func (r *punchEventRepositoryImpl) Create(ctx context.Context, event punch.Event) (punch.Event, error) {
	dayStart := schedule.DateOf(event.Timestamp)
	dayEnd := dayStart.AddDate(0, 0, 1)

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, event.UserID); err != nil {
			return fmt.Errorf("failed to lock punches: %w", err)
		}

		var exists bool
		err := q.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM punch_events
				WHERE user_id = $1 AND type = $2
				  AND timestamp >= $3 AND timestamp < $4
			)
		`, event.UserID, event.Type, dayStart, dayEnd).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check existing punch: %w", err)
		}
		if exists {
			return punch.ErrPunchAlreadyRecorded
		}

		query := `
			INSERT INTO punch_events (
				id, user_id, organization_id, type, timestamp,
				latitude, longitude, distance_meters
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at
		`
		return q.QueryRow(ctx, query,
			event.ID, event.UserID, event.OrganizationID, event.Type, event.Timestamp,
			event.Latitude, event.Longitude, event.DistanceMeters,
		).Scan(&event.CreatedAt)
	})
	if err != nil {
		return punch.Event{}, err
	}

	return event, nil
}

// ListByUser implements punch.EventRepository.
func (r *punchEventRepositoryImpl) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchEventColumns + `
		FROM punch_events
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	return collectPunchEvents(rows)
}

// ListByOrganization implements punch.EventRepository.
func (r *punchEventRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchEventColumns + `
		FROM punch_events
		WHERE organization_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY user_id, timestamp
	`

	rows, err := q.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization punches: %w", err)
	}
	return collectPunchEvents(rows)
}

func collectPunchEvents(rows pgx.Rows) ([]punch.Event, error) {
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (punch.Event, error) {
		var e punch.Event
		err := row.Scan(
			&e.ID,
			&e.UserID,
			&e.OrganizationID,
			&e.Type,
			&e.Timestamp,
			&e.Latitude,
			&e.Longitude,
			&e.DistanceMeters,
			&e.CreatedAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan punches: %w", err)
	}
	return events, nil
}

func NewPunchEventRepository(db *database.DB) punch.EventRepository {
	return &punchEventRepositoryImpl{db: db}
}
