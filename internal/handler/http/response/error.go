package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Messages shown to the
// employee follow the request locale.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var denied *punch.DeniedError
	if errors.As(err, &denied) {
		ForbiddenWithCode(w, "OUTSIDE_SCHEDULE", denied.Reason, nil)
		return
	}

	var rejected *punch.LocationRejectedError
	if errors.As(err, &rejected) {
		details := map[string]string{"reason": string(rejected.Reason)}
		if rejected.DistanceMeters != nil {
			details["distance_meters"] = strconv.FormatFloat(*rejected.DistanceMeters, 'f', 1, 64)
		}
		ForbiddenWithCode(w, "LOCATION_REJECTED", rejected.Message, details)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, jwt.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchAlreadyRecorded):
		Conflict(w, i18n.T(ctx, "punch.already_recorded"))
	case errors.Is(err, punch.ErrPunchOutOfOrder):
		Conflict(w, i18n.T(ctx, "punch.out_of_order"))
	case errors.Is(err, punch.ErrDayComplete):
		Conflict(w, i18n.T(ctx, "punch.day_complete"))

	// Timesheet domain errors
	case errors.Is(err, profile.ErrProfileNotFound), errors.Is(err, timesheet.ErrUserNotInOrganization):
		NotFound(w, "Employee not found")
	case errors.Is(err, timesheet.ErrMonthInFuture):
		BadRequest(w, "Requested month has not started yet", nil)

	default:
		slog.Error("Unhandled error", "path", r.URL.Path, "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
