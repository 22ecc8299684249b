package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
	"golang.org/x/sync/errgroup"
)

type TimesheetServiceImpl struct {
	profiles    profile.Repository
	schedules   schedule.WorkScheduleRepository
	adjustments schedule.ScheduleAdjustmentRepository
	events      punch.EventRepository
	intervals   absence.IntervalRepository
	holidays    absence.HolidayRepository
	location    *time.Location
	now         func() time.Time
}

func NewTimesheetService(
	profiles profile.Repository,
	schedules schedule.WorkScheduleRepository,
	adjustments schedule.ScheduleAdjustmentRepository,
	events punch.EventRepository,
	intervals absence.IntervalRepository,
	holidays absence.HolidayRepository,
	location *time.Location,
) timesheet.Service {
	if location == nil {
		location = time.UTC
	}
	return &TimesheetServiceImpl{
		profiles:    profiles,
		schedules:   schedules,
		adjustments: adjustments,
		events:      events,
		intervals:   intervals,
		holidays:    holidays,
		location:    location,
		now:         time.Now,
	}
}

// GetMonth implements timesheet.Service.
func (s *TimesheetServiceImpl) GetMonth(ctx context.Context, req timesheet.MonthRequest) (timesheet.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.MonthResponse{}, err
	}

	p, err := s.profiles.GetByUserID(ctx, req.UserID)
	if err != nil {
		return timesheet.MonthResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if req.OrganizationID != "" && p.OrganizationID != req.OrganizationID {
		return timesheet.MonthResponse{}, timesheet.ErrUserNotInOrganization
	}

	today := s.now().In(s.location)
	month := time.Month(req.Month)
	from, to, ok := MonthRange(req.Year, month, today, s.location)
	if !ok {
		return timesheet.MonthResponse{}, timesheet.ErrMonthInFuture
	}

	var ws *schedule.WorkSchedule
	if p.WorkScheduleID != nil && *p.WorkScheduleID != "" {
		found, err := s.schedules.GetByID(ctx, *p.WorkScheduleID, p.OrganizationID)
		switch {
		case errors.Is(err, schedule.ErrWorkScheduleNotFound):
			slog.Warn("Assigned work schedule not found", "user_id", p.UserID, "work_schedule_id", *p.WorkScheduleID)
		case err != nil:
			return timesheet.MonthResponse{}, fmt.Errorf("failed to get work schedule: %w", err)
		default:
			ws = &found
		}
	}

	var (
		events      []punch.Event
		intervals   []absence.Interval
		holidays    []absence.Holiday
		adjustments []schedule.ScheduleAdjustment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.ListByUser(gctx, p.UserID, from, to.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		intervals, err = s.intervals.ListByUser(gctx, p.UserID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list absences: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		holidays, err = s.holidays.ListByOrganization(gctx, p.OrganizationID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		adjustments, err = s.adjustments.ListCovering(gctx, p.UserID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list schedule adjustments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return timesheet.MonthResponse{}, err
	}

	summary := AccumulateMonth(MonthInput{
		UserID:         p.UserID,
		Year:           req.Year,
		Month:          month,
		Today:          today,
		Location:       s.location,
		HireDate:       p.HireDate,
		Schedule:       ws,
		Punches:        events,
		Classification: absence.Classify(from, to, intervals, holidays),
		Adjustments:    adjustments,
	})

	return toMonthResponse(summary), nil
}

// ListAlerts implements timesheet.Service.
func (s *TimesheetServiceImpl) ListAlerts(ctx context.Context, organizationID string, now time.Time) (timesheet.AlertListResponse, error) {
	now = now.In(s.location)
	dayStart := schedule.DateOf(now)

	var (
		profiles []profile.Profile
		events   []punch.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.ListByOrganization(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.events.ListByOrganization(gctx, organizationID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return timesheet.AlertListResponse{}, err
	}

	byUser := make(map[string][]punch.Event)
	for _, e := range events {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	resp := timesheet.AlertListResponse{
		Date:   absence.DateKey(dayStart),
		Alerts: []timesheet.AlertResponse{},
	}
	for _, p := range profiles {
		alert := DeriveAlert(p.UserID, byUser[p.UserID], now)
		if alert == nil {
			continue
		}
		resp.Alerts = append(resp.Alerts, timesheet.AlertResponse{
			UserID:       p.UserID,
			FullName:     p.FullName,
			Kind:         string(alert.Kind),
			TodayMinutes: alert.TodayMinutes,
		})
	}

	return resp, nil
}

func toMonthResponse(summary timesheet.MonthSummary) timesheet.MonthResponse {
	resp := timesheet.MonthResponse{
		UserID:          summary.UserID,
		Year:            summary.Year,
		Month:           int(summary.Month),
		TotalWorked:     summary.TotalWorked,
		TotalExpected:   summary.TotalExpected,
		TotalBalance:    summary.TotalBalance,
		Balance:         timesheet.FormatBalance(summary.TotalBalance),
		Inconsistencies: summary.Inconsistencies,
		Days:            make([]timesheet.DayResponse, 0, len(summary.Days)),
	}

	for _, d := range summary.Days {
		day := timesheet.DayResponse{
			Date:              absence.DateKey(d.Date),
			Weekday:           int(d.Date.Weekday()),
			WorkedMinutes:     d.WorkedMinutes,
			ExpectedMinutes:   d.ExpectedMinutes,
			BalanceMinutes:    d.BalanceMinutes,
			Balance:           timesheet.FormatBalance(d.BalanceMinutes),
			HasInconsistency:  d.HasInconsistency,
			HasAdjustmentNote: d.HasAdjustmentNote,
		}
		if d.Absence != nil {
			info := d.Absence.Info()
			kind := string(*d.Absence)
			day.Absence = &kind
			day.AbsenceLabel = &info.Label
			day.AbsenceColor = &info.Color
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}
