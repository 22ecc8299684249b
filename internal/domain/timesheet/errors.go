package timesheet

import "errors"

var (
	ErrUserNotInOrganization = errors.New("user does not belong to this organization")
	ErrMonthInFuture         = errors.New("requested month has not started yet")
)
