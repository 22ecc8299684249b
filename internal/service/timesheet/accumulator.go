package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
)

// CompleteDayPunches is the number of punches of a complete day. A past day
// with fewer (but some) punches is flagged for review.
// TODO: derive from the schedule once schedules without a lunch break exist.
const CompleteDayPunches = 4

// DayInput holds everything needed to settle one calendar day.
type DayInput struct {
	Date              time.Time
	Punches           []punch.Event
	ExpectedMinutes   int
	Absence           *absence.Type
	IsPastDay         bool
	HasAdjustmentNote bool
}

// ComputeDay derives worked, expected and balance minutes of a day.
func ComputeDay(in DayInput) timesheet.DayBalance {
	day := timesheet.DayBalance{
		Date:              in.Date,
		ExpectedMinutes:   in.ExpectedMinutes,
		Absence:           in.Absence,
		HasAdjustmentNote: in.HasAdjustmentNote,
	}

	if in.IsPastDay && in.Absence == nil && len(in.Punches) > 0 && len(in.Punches) < CompleteDayPunches {
		day.HasInconsistency = true
		return day
	}

	if in.Absence != nil {
		if in.Absence.Debits() {
			day.BalanceMinutes = -in.ExpectedMinutes
		}
		return day
	}

	day.WorkedMinutes = WorkedMinutes(punch.FirstOfEach(in.Punches))
	switch {
	case day.WorkedMinutes > 0:
		day.BalanceMinutes = day.WorkedMinutes - in.ExpectedMinutes
	case in.ExpectedMinutes > 0 && in.IsPastDay:
		day.BalanceMinutes = -in.ExpectedMinutes
	}
	return day
}

// WorkedMinutes sums the completed entry→lunch_out and lunch_in→exit
// segments. A segment missing either end counts zero.
func WorkedMinutes(first map[punch.Type]time.Time) int {
	return segment(first, punch.TypeEntry, punch.TypeLunchOut) +
		segment(first, punch.TypeLunchIn, punch.TypeExit)
}

func segment(first map[punch.Type]time.Time, from, to punch.Type) int {
	start, okStart := first[from]
	end, okEnd := first[to]
	if !okStart || !okEnd {
		return 0
	}
	return minutesBetween(start, end)
}

// minutesBetween truncates toward zero, like a whole-minute difference.
func minutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
