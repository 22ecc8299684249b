package punch

import (
	"errors"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
)

var (
	ErrPunchAlreadyRecorded = errors.New("punch of this type already recorded today")
	ErrPunchOutOfOrder      = errors.New("punch is out of order for today")
	ErrDayComplete          = errors.New("all punches for today are already recorded")
	ErrOutsideSchedule      = errors.New("punch attempt outside working schedule")
	ErrLocationRejected     = errors.New("punch location rejected")
)

// DeniedError carries the reason shown to the employee when the punch gate
// refuses an attempt.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Unwrap() error { return ErrOutsideSchedule }

// LocationRejectedError carries the localized geofence outcome.
type LocationRejectedError struct {
	Reason         geofence.Reason
	Message        string
	DistanceMeters *float64
}

func (e *LocationRejectedError) Error() string { return e.Message }

func (e *LocationRejectedError) Unwrap() error { return ErrLocationRejected }
