package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

// GetByID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT
			id, organization_id, name,
			start_time, end_time, break_start, break_end,
			sunday_hours, monday_hours, tuesday_hours, wednesday_hours,
			thursday_hours, friday_hours, saturday_hours,
			created_at, updated_at
		FROM work_schedules
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`

	var (
		ws                   schedule.WorkSchedule
		start, end           pgtype.Time
		breakStart, breakEnd pgtype.Time
	)
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&ws.ID,
		&ws.OrganizationID,
		&ws.Name,
		&start,
		&end,
		&breakStart,
		&breakEnd,
		&ws.WeekdayHours[time.Sunday],
		&ws.WeekdayHours[time.Monday],
		&ws.WeekdayHours[time.Tuesday],
		&ws.WeekdayHours[time.Wednesday],
		&ws.WeekdayHours[time.Thursday],
		&ws.WeekdayHours[time.Friday],
		&ws.WeekdayHours[time.Saturday],
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	ws.StartTime = clockTime(start)
	ws.EndTime = clockTime(end)
	ws.BreakStart = clockTimeOrNil(breakStart)
	ws.BreakEnd = clockTimeOrNil(breakEnd)

	return ws, nil
}

// clockTime converts a TIME column. NULL reads as midnight.
func clockTime(t pgtype.Time) schedule.ClockTime {
	if !t.Valid {
		return 0
	}
	return schedule.ClockTime(t.Microseconds / int64(time.Minute/time.Microsecond))
}

func clockTimeOrNil(t pgtype.Time) *schedule.ClockTime {
	if !t.Valid {
		return nil
	}
	c := clockTime(t)
	return &c
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}
