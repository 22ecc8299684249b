package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	// GetByID returns ErrWorkScheduleNotFound when no schedule matches.
	GetByID(ctx context.Context, id string, organizationID string) (WorkSchedule, error)
}

type ScheduleAdjustmentRepository interface {
	// ListCovering returns every adjustment of the user whose date range
	// intersects [from, to]. Ordering is not guaranteed.
	ListCovering(ctx context.Context, userID string, from, to time.Time) ([]ScheduleAdjustment, error)
}

type FlexibilitySettingsRepository interface {
	// GetByOrganization returns ErrFlexibilitySettingsNotFound when the
	// organization never configured its flexibility mode.
	GetByOrganization(ctx context.Context, organizationID string) (FlexibilitySettings, error)
}

type OvertimeAuthorizationRepository interface {
	// HasStanding reports whether the user holds an overtime authorization
	// valid on the given date outside of any schedule adjustment.
	HasStanding(ctx context.Context, userID string, date time.Time) (bool, error)
}
