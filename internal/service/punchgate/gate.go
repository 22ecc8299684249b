package punchgate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
)

// Gate resolves the records a decision depends on and evaluates it. Any
// lookup failure allows the punch.
type Gate struct {
	schedules     schedule.WorkScheduleRepository
	adjustments   schedule.ScheduleAdjustmentRepository
	settings      schedule.FlexibilitySettingsRepository
	overtime      schedule.OvertimeAuthorizationRepository
	lookupTimeout time.Duration
}

func NewGate(
	schedules schedule.WorkScheduleRepository,
	adjustments schedule.ScheduleAdjustmentRepository,
	settings schedule.FlexibilitySettingsRepository,
	overtime schedule.OvertimeAuthorizationRepository,
	lookupTimeout time.Duration,
) *Gate {
	return &Gate{
		schedules:     schedules,
		adjustments:   adjustments,
		settings:      settings,
		overtime:      overtime,
		lookupTimeout: lookupTimeout,
	}
}

// Decide evaluates a punch attempt by p at now. now must already be in the
// organization's timezone.
func (g *Gate) Decide(ctx context.Context, p profile.Profile, now time.Time) Decision {
	in, err := g.resolve(ctx, p, now)
	if err != nil {
		slog.Warn("Punch gate lookup failed, allowing punch",
			"user_id", p.UserID,
			"organization_id", p.OrganizationID,
			"error", err,
		)
		return allow(BasisLookupFailed)
	}

	d := Evaluate(in)
	if !d.Allowed {
		slog.Info("Punch attempt denied",
			"user_id", p.UserID,
			"basis", d.Basis,
			"at", now.Format("15:04"),
		)
	}
	return d
}

func (g *Gate) resolve(ctx context.Context, p profile.Profile, now time.Time) (Input, error) {
	in := Input{Now: now}

	settings, err := withTimeout(ctx, g.lookupTimeout, func(ctx context.Context) (schedule.FlexibilitySettings, error) {
		return g.settings.GetByOrganization(ctx, p.OrganizationID)
	})
	switch {
	case errors.Is(err, schedule.ErrFlexibilitySettingsNotFound):
		return in, nil
	case err != nil:
		return in, err
	}
	in.Settings = &settings

	// Nothing else matters in hours_only mode.
	if settings.Mode == schedule.FlexibilityHoursOnly {
		return in, nil
	}

	if p.WorkScheduleID == nil || *p.WorkScheduleID == "" {
		return in, nil
	}
	ws, err := withTimeout(ctx, g.lookupTimeout, func(ctx context.Context) (schedule.WorkSchedule, error) {
		return g.schedules.GetByID(ctx, *p.WorkScheduleID, p.OrganizationID)
	})
	switch {
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		return in, nil
	case err != nil:
		return in, err
	}
	in.Schedule = &ws

	today := schedule.DateOf(now)
	adjustments, err := withTimeout(ctx, g.lookupTimeout, func(ctx context.Context) ([]schedule.ScheduleAdjustment, error) {
		return g.adjustments.ListCovering(ctx, p.UserID, today, today)
	})
	if err != nil {
		return in, err
	}
	in.Adjustment = schedule.ActiveAdjustment(adjustments, now)

	standing, err := withTimeout(ctx, g.lookupTimeout, func(ctx context.Context) (bool, error) {
		return g.overtime.HasStanding(ctx, p.UserID, today)
	})
	if err != nil {
		return in, err
	}
	in.StandingOvertime = standing

	return in, nil
}

func withTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
