package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
)

// MonthInput is a resolved snapshot of one employee's month.
type MonthInput struct {
	UserID   string
	Year     int
	Month    time.Month
	Today    time.Time
	Location *time.Location
	HireDate *time.Time
	Schedule *schedule.WorkSchedule

	Punches        []punch.Event
	Classification map[string]absence.Type
	Adjustments    []schedule.ScheduleAdjustment
}

// MonthRange returns the first day of the month and the last day that
// counts: the month end, or today when the month is in progress.
// ok is false when the month has not started yet.
func MonthRange(year int, month time.Month, today time.Time, loc *time.Location) (from, to time.Time, ok bool) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := from.AddDate(0, 1, -1)
	today = schedule.DateOf(today.In(loc))
	if today.Before(from) {
		return from, from, false
	}
	if today.Before(last) {
		return from, today, true
	}
	return from, last, true
}

// AccumulateMonth settles every counted day of the month in date order and
// sums their balances. Days after today are not part of the result.
func AccumulateMonth(in MonthInput) timesheet.MonthSummary {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	summary := timesheet.MonthSummary{UserID: in.UserID, Year: in.Year, Month: in.Month}

	from, to, ok := MonthRange(in.Year, in.Month, in.Today, loc)
	if !ok {
		return summary
	}
	today := schedule.DateOf(in.Today.In(loc))

	byDay := make(map[string][]punch.Event)
	for _, e := range in.Punches {
		key := absence.DateKey(e.Timestamp.In(loc))
		byDay[key] = append(byDay[key], e)
	}

	var hire time.Time
	if in.HireDate != nil {
		h := *in.HireDate
		hire = time.Date(h.Year(), h.Month(), h.Day(), 0, 0, 0, 0, loc)
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !hire.IsZero() && d.Before(hire) {
			continue
		}
		key := absence.DateKey(d)

		var abs *absence.Type
		if t, found := in.Classification[key]; found {
			abs = &t
		}

		expected := 0
		if in.Schedule != nil {
			expected = in.Schedule.ExpectedMinutes(d.Weekday())
		}

		day := ComputeDay(DayInput{
			Date:              d,
			Punches:           byDay[key],
			ExpectedMinutes:   expected,
			Absence:           abs,
			IsPastDay:         d.Before(today),
			HasAdjustmentNote: schedule.ActiveAdjustment(in.Adjustments, d) != nil,
		})

		summary.Days = append(summary.Days, day)
		summary.TotalWorked += day.WorkedMinutes
		summary.TotalExpected += day.ExpectedMinutes
		summary.TotalBalance += day.BalanceMinutes
		if day.HasInconsistency {
			summary.Inconsistencies++
		}
	}

	return summary
}
