package punchgate

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
)

// DeniedReason is shown to the employee on every schedule denial. Other
// surfaces and compliance documents quote it verbatim.
const DeniedReason = "Você está fora da sua jornada de trabalho."

// FixedBufferMinutes is the slack of fixed mode on both ends of the day.
const FixedBufferMinutes = 2

// Basis records which rule produced a decision.
type Basis string

const (
	BasisHoursOnly      Basis = "hours_only"
	BasisNoSettings     Basis = "no_settings"
	BasisNoSchedule     Basis = "no_schedule"
	BasisUnknownPolicy  Basis = "unknown_policy"
	BasisLookupFailed   Basis = "lookup_failed"
	BasisDayOffOvertime Basis = "day_off_overtime"
	BasisDayOff         Basis = "day_off"
	BasisInsideWindow   Basis = "inside_window"
	BasisOutsideWindow  Basis = "outside_window"
)

// Window is the allowed interval of wall-clock minutes, both ends inclusive.
type Window struct {
	Earliest int
	Latest   int
}

func (w Window) Contains(minutes int) bool {
	return w.Earliest <= minutes && minutes <= w.Latest
}

// Decision is the outcome of a punch attempt evaluation.
type Decision struct {
	Allowed bool
	Reason  string
	Basis   Basis
	Window  *Window
}

func allow(basis Basis) Decision {
	return Decision{Allowed: true, Basis: basis}
}

func deny(basis Basis) Decision {
	return Decision{Allowed: false, Reason: DeniedReason, Basis: basis}
}

// Input is a resolved snapshot of everything a decision depends on. Nil
// pointers mean the record does not exist.
type Input struct {
	Now              time.Time
	Settings         *schedule.FlexibilitySettings
	Schedule         *schedule.WorkSchedule
	Adjustment       *schedule.ScheduleAdjustment
	StandingOvertime bool
}

type policy int

const (
	policyUnknown policy = iota
	policyMissing
	policyHoursOnly
	policyTolerance
	policyFixed
)

// policyOf maps settings to a policy. Both missing settings and
// unrecognised modes end up allowing the punch; missing settings do so
// before any schedule rule is looked at.
func policyOf(s *schedule.FlexibilitySettings) policy {
	if s == nil {
		return policyMissing
	}
	switch s.Mode {
	case schedule.FlexibilityHoursOnly:
		return policyHoursOnly
	case schedule.FlexibilityTolerance:
		return policyTolerance
	case schedule.FlexibilityFixed:
		return policyFixed
	default:
		return policyUnknown
	}
}

// Evaluate decides whether a punch at in.Now is allowed. Wall-clock values
// are read from in.Now in its own location. Schedules crossing midnight are
// not supported.
func Evaluate(in Input) Decision {
	p := policyOf(in.Settings)
	switch p {
	case policyMissing:
		return allow(BasisNoSettings)
	case policyHoursOnly:
		return allow(BasisHoursOnly)
	}

	if in.Schedule == nil {
		return allow(BasisNoSchedule)
	}

	adj := in.Adjustment
	if adj != nil && !adj.Covers(in.Now) {
		adj = nil
	}

	hasOvertimeAuth := in.StandingOvertime || (adj != nil && adj.OvertimeAuthorized)

	if in.Schedule.ExpectedMinutes(in.Now.Weekday()) == 0 {
		if hasOvertimeAuth {
			return allow(BasisDayOffOvertime)
		}
		return deny(BasisDayOff)
	}

	start, end := in.Schedule.StartTime, in.Schedule.EndTime
	if adj != nil {
		if adj.CustomStartTime != nil {
			start = *adj.CustomStartTime
		}
		if adj.CustomEndTime != nil {
			end = *adj.CustomEndTime
		}
	}

	overtimeCap := schedule.DefaultOvertimeMaxMinutes
	if adj != nil {
		overtimeCap = adj.OvertimeCap()
	}

	var slack int
	switch p {
	case policyTolerance:
		slack = in.Settings.ToleranceMinutes
	case policyFixed:
		slack = FixedBufferMinutes
	default:
		return allow(BasisUnknownPolicy)
	}

	w := Window{
		Earliest: start.Minutes() - slack,
		Latest:   end.Minutes() + slack,
	}
	if hasOvertimeAuth {
		w.Latest = end.Minutes() + overtimeCap
	}

	current := schedule.ClockTimeOf(in.Now).Minutes()
	if w.Contains(current) {
		d := allow(BasisInsideWindow)
		d.Window = &w
		return d
	}
	d := deny(BasisOutsideWindow)
	d.Window = &w
	return d
}
