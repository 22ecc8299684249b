package schedule

import (
	"fmt"
	"math"
	"time"
)

// ClockTime is a wall-clock time of day expressed in minutes since midnight.
type ClockTime int

// NewClockTime builds a ClockTime from hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ClockTimeOf returns the wall-clock minutes of t in its own location.
func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Minutes() int { return int(c) }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// WorkSchedule is a named weekly work pattern owned by an organization.
type WorkSchedule struct {
	ID             string
	OrganizationID string
	Name           string
	StartTime      ClockTime
	EndTime        ClockTime
	BreakStart     *ClockTime // informational only
	BreakEnd       *ClockTime // informational only

	// WeekdayHours is indexed by time.Weekday (Sunday=0 ... Saturday=6).
	WeekdayHours [7]float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpectedMinutes returns the expected work for the given weekday, rounded
// to the nearest minute. Zero means a day off.
func (w WorkSchedule) ExpectedMinutes(day time.Weekday) int {
	h := w.WeekdayHours[day]
	if h <= 0 {
		return 0
	}
	return int(math.Round(h * 60))
}

// DefaultOvertimeMaxMinutes applies when overtime is authorized without a cap.
const DefaultOvertimeMaxMinutes = 120

// ScheduleAdjustment is a temporary per-employee override over the
// inclusive date range [StartDate, EndDate].
type ScheduleAdjustment struct {
	ID                 string
	UserID             string
	OrganizationID     string
	StartDate          time.Time
	EndDate            time.Time
	CustomStartTime    *ClockTime
	CustomEndTime      *ClockTime
	OvertimeAuthorized bool
	OvertimeMaxMinutes *int
	Reason             *string
	CreatedAt          time.Time
}

// Covers reports whether day falls inside the adjustment's date range.
// Only the calendar date of day is considered.
func (a ScheduleAdjustment) Covers(day time.Time) bool {
	d := calendarDate(day)
	return !d.Before(calendarDate(a.StartDate)) && !d.After(calendarDate(a.EndDate))
}

// OvertimeCap is the number of minutes past the end time an authorized
// employee may still punch.
func (a ScheduleAdjustment) OvertimeCap() int {
	if a.OvertimeMaxMinutes != nil {
		return *a.OvertimeMaxMinutes
	}
	return DefaultOvertimeMaxMinutes
}

// ActiveAdjustment picks, among the adjustments covering day, the one created
// most recently. Returns nil when none covers day.
func ActiveAdjustment(adjustments []ScheduleAdjustment, day time.Time) *ScheduleAdjustment {
	var active *ScheduleAdjustment
	for i := range adjustments {
		adj := &adjustments[i]
		if !adj.Covers(day) {
			continue
		}
		if active == nil || adj.CreatedAt.After(active.CreatedAt) {
			active = adj
		}
	}
	return active
}

// FlexibilityMode controls how strictly punch times follow the schedule.
type FlexibilityMode string

const (
	FlexibilityTolerance FlexibilityMode = "tolerance"
	FlexibilityFixed     FlexibilityMode = "fixed"
	FlexibilityHoursOnly FlexibilityMode = "hours_only"
)

var FlexibilityModeValues = []string{
	string(FlexibilityTolerance),
	string(FlexibilityFixed),
	string(FlexibilityHoursOnly),
}

// FlexibilitySettings is one row per organization. ToleranceMinutes is only
// meaningful in tolerance mode.
type FlexibilitySettings struct {
	OrganizationID   string
	Mode             FlexibilityMode
	ToleranceMinutes int
	UpdatedAt        time.Time
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDate keeps the calendar date of t and drops its location, so dates
// read from storage compare equal to local dates.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
