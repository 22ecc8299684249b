package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
)

// TodayMinutes is the time elapsed since entry (up to exit, or now while the
// day is open) minus a completed lunch break. Zero without an entry.
func TodayMinutes(first map[punch.Type]time.Time, now time.Time) int {
	entry, ok := first[punch.TypeEntry]
	if !ok {
		return 0
	}
	end, hasExit := first[punch.TypeExit]
	if !hasExit {
		end = now
	}
	total := minutesBetween(entry, end)

	lunchOut, okOut := first[punch.TypeLunchOut]
	lunchIn, okIn := first[punch.TypeLunchIn]
	if okOut && okIn {
		total -= minutesBetween(lunchOut, lunchIn)
	}
	return total
}

// DeriveAlert returns at most one alert for the employee's current day.
// Overtime wins when both conditions hold.
func DeriveAlert(userID string, punches []punch.Event, now time.Time) *timesheet.Alert {
	first := punch.FirstOfEach(punches)
	minutes := TodayMinutes(first, now)
	_, hasEntry := first[punch.TypeEntry]
	_, hasExit := first[punch.TypeExit]

	switch {
	case minutes > timesheet.OvertimeAlertMinutes:
		return &timesheet.Alert{UserID: userID, Kind: timesheet.AlertOvertime, TodayMinutes: minutes}
	case hasEntry && !hasExit && minutes > timesheet.MissingExitAlertMinutes:
		return &timesheet.Alert{UserID: userID, Kind: timesheet.AlertMissingExit, TodayMinutes: minutes}
	}
	return nil
}
