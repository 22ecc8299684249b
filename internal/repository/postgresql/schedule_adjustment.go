package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type scheduleAdjustmentRepositoryImpl struct {
	db *database.DB
}

// ListCovering implements schedule.ScheduleAdjustmentRepository.
func (r *scheduleAdjustmentRepositoryImpl) ListCovering(ctx context.Context, userID string, from, to time.Time) ([]schedule.ScheduleAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			id, user_id, organization_id, start_date, end_date,
			custom_start_time, custom_end_time,
			overtime_authorized, overtime_max_minutes, reason,
			created_at
		FROM schedule_adjustments
		WHERE user_id = $1
		  AND start_date <= $3::date
		  AND end_date >= $2::date
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []schedule.ScheduleAdjustment
	for rows.Next() {
		var (
			a                      schedule.ScheduleAdjustment
			customStart, customEnd pgtype.Time
			overtimeMax            pgtype.Int4
		)
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.OrganizationID,
			&a.StartDate,
			&a.EndDate,
			&customStart,
			&customEnd,
			&a.OvertimeAuthorized,
			&overtimeMax,
			&a.Reason,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule adjustment: %w", err)
		}
		a.CustomStartTime = clockTimeOrNil(customStart)
		a.CustomEndTime = clockTimeOrNil(customEnd)
		if overtimeMax.Valid {
			v := int(overtimeMax.Int32)
			a.OvertimeMaxMinutes = &v
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule adjustments: %w", err)
	}

	return adjustments, nil
}

func NewScheduleAdjustmentRepository(db *database.DB) schedule.ScheduleAdjustmentRepository {
	return &scheduleAdjustmentRepositoryImpl{db: db}
}
