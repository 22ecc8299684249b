package timesheet

import (
	"context"
	"time"
)

type Service interface {
	// GetMonth returns the month-to-date summary of one employee.
	GetMonth(ctx context.Context, req MonthRequest) (MonthResponse, error)

	// ListAlerts evaluates today's alerts for every employee of the organization.
	ListAlerts(ctx context.Context, organizationID string, now time.Time) (AlertListResponse, error)
}
