package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

// ListByUser implements absence.IntervalRepository. Approved vacations come
// first so they win over overlapping absences.
func (r *absenceRepositoryImpl) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]absence.Interval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, type, notes
		FROM (
			SELECT id, user_id, start_date, end_date, 'vacation' AS type, notes, 0 AS priority
			FROM vacations
			WHERE user_id = $1 AND status = 'approved'
			  AND start_date <= $3::date AND end_date >= $2::date
			UNION ALL
			SELECT id, user_id, start_date, end_date, type, notes, 1 AS priority
			FROM absences
			WHERE user_id = $1
			  AND start_date <= $3::date AND end_date >= $2::date
		) intervals
		ORDER BY priority, start_date
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	intervals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (absence.Interval, error) {
		var iv absence.Interval
		err := row.Scan(&iv.ID, &iv.UserID, &iv.StartDate, &iv.EndDate, &iv.Type, &iv.Notes)
		return iv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan absences: %w", err)
	}

	return intervals, nil
}

func NewAbsenceRepository(db *database.DB) absence.IntervalRepository {
	return &absenceRepositoryImpl{db: db}
}
