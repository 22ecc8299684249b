package punch

import (
	"context"
	"time"
)

// Service handles punch attempts for the authenticated employee.
type Service interface {
	// Check evaluates whether a punch is allowed right now without recording it.
	Check(ctx context.Context, userID, organizationID string) (DecisionResponse, error)

	// Submit validates timing and location, then records the punch.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)

	// ListDay returns the punches of the given local date.
	ListDay(ctx context.Context, userID string, date time.Time) (DayResponse, error)
}
