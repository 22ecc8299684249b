package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

// ListByOrganization implements absence.HolidayRepository.
func (r *holidayRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]absence.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, date, name
		FROM holidays
		WHERE (organization_id IS NULL OR organization_id = $1)
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, organizationID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	holidays, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (absence.Holiday, error) {
		var h absence.Holiday
		err := row.Scan(&h.ID, &h.OrganizationID, &h.Date, &h.Name)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) absence.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}
