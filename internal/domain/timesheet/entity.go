package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
)

// DayBalance is the derived result of one calendar day.
type DayBalance struct {
	Date              time.Time
	WorkedMinutes     int
	ExpectedMinutes   int
	BalanceMinutes    int
	Absence           *absence.Type
	HasInconsistency  bool
	HasAdjustmentNote bool
}

// MonthSummary aggregates the month-to-date days of one employee.
type MonthSummary struct {
	UserID          string
	Year            int
	Month           time.Month
	Days            []DayBalance
	TotalWorked     int
	TotalExpected   int
	TotalBalance    int
	Inconsistencies int
}

type AlertKind string

const (
	AlertOvertime    AlertKind = "overtime"
	AlertMissingExit AlertKind = "missing_exit"
)

const (
	// OvertimeAlertMinutes is the worked time after which a day is flagged.
	OvertimeAlertMinutes = 600
	// MissingExitAlertMinutes is the open-session time after which a
	// missing exit is flagged.
	MissingExitAlertMinutes = 540
)

// Alert flags an employee's current day.
type Alert struct {
	UserID       string
	FullName     string
	Kind         AlertKind
	TodayMinutes int
}
