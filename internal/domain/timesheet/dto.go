package timesheet

import (
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type MonthRequest struct {
	UserID         string `json:"-"`
	OrganizationID string `json:"-"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayResponse struct {
	Date              string  `json:"date"`
	Weekday           int     `json:"weekday"`
	WorkedMinutes     int     `json:"worked_minutes"`
	ExpectedMinutes   int     `json:"expected_minutes"`
	BalanceMinutes    int     `json:"balance_minutes"`
	Balance           string  `json:"balance"`
	Absence           *string `json:"absence,omitempty"`
	AbsenceLabel      *string `json:"absence_label,omitempty"`
	AbsenceColor      *string `json:"absence_color,omitempty"`
	HasInconsistency  bool    `json:"has_inconsistency"`
	HasAdjustmentNote bool    `json:"has_adjustment_note"`
}

type MonthResponse struct {
	UserID          string        `json:"user_id"`
	Year            int           `json:"year"`
	Month           int           `json:"month"`
	TotalWorked     int           `json:"total_worked_minutes"`
	TotalExpected   int           `json:"total_expected_minutes"`
	TotalBalance    int           `json:"total_balance_minutes"`
	Balance         string        `json:"balance"`
	Inconsistencies int           `json:"inconsistencies"`
	Days            []DayResponse `json:"days"`
}

type AlertResponse struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Kind         string `json:"kind"`
	TodayMinutes int    `json:"today_minutes"`
}

type AlertListResponse struct {
	Date   string          `json:"date"`
	Alerts []AlertResponse `json:"alerts"`
}

// FormatBalance renders signed minutes as "+HH:MM" / "-HH:MM".
func FormatBalance(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
