package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	GetMyMonth(w http.ResponseWriter, r *http.Request)
	GetUserMonth(w http.ResponseWriter, r *http.Request)
	ListAlerts(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
	location         *time.Location
	now              func() time.Time
}

func NewTimesheetHandler(timesheetService timesheet.Service, location *time.Location) TimesheetHandler {
	if location == nil {
		location = time.UTC
	}
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		location:         location,
		now:              time.Now,
	}
}

// GetMyMonth implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMyMonth(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	h.month(w, r, claims.UserID, claims.OrganizationID)
}

// GetUserMonth implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetUserMonth(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	h.month(w, r, chi.URLParam(r, "userID"), claims.OrganizationID)
}

// ListAlerts implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListAlerts(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.timesheetService.ListAlerts(r.Context(), claims.OrganizationID, h.now())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) month(w http.ResponseWriter, r *http.Request, userID, organizationID string) {
	req, err := h.parseMonthRequest(r)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	req.UserID = userID
	req.OrganizationID = organizationID

	result, err := h.timesheetService.GetMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// parseMonthRequest reads ?year=&month=. Missing values default to the
// current month.
func (h *timesheetHandlerImpl) parseMonthRequest(r *http.Request) (timesheet.MonthRequest, error) {
	now := h.now().In(h.location)
	req := timesheet.MonthRequest{Year: now.Year(), Month: int(now.Month())}

	var errs validator.ValidationErrors
	query := r.URL.Query()

	if raw := query.Get("year"); raw != "" {
		if !validator.IsNumeric(raw) {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		} else {
			req.Year, _ = strconv.Atoi(raw)
		}
	}

	if raw := query.Get("month"); raw != "" {
		if !validator.IsNumeric(raw) {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		} else {
			req.Month, _ = strconv.Atoi(raw)
		}
	}

	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}
