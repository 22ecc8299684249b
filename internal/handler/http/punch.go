package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type PunchHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.Service
	location     *time.Location
	now          func() time.Time
}

func NewPunchHandler(punchService punch.Service, location *time.Location) PunchHandler {
	if location == nil {
		location = time.UTC
	}
	return &punchHandlerImpl{
		punchService: punchService,
		location:     location,
		now:          time.Now,
	}
}

// Check implements PunchHandler.
func (h *punchHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.punchService.Check(r.Context(), claims.UserID, claims.OrganizationID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if !result.Allowed {
		response.SuccessWithMessage(w, result.Reason, result)
		return
	}
	response.SuccessWithMessage(w, i18n.T(r.Context(), "punch.allowed"), result)
}

// Submit implements PunchHandler.
func (h *punchHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req punch.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = claims.UserID
	req.OrganizationID = claims.OrganizationID

	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.punchService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, i18n.T(r.Context(), "punch.recorded"), result)
}

// ListDay implements PunchHandler.
func (h *punchHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	date := h.now().In(h.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.HandleError(w, r, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}})
			return
		}
		date = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.location)
	}

	result, err := h.punchService.ListDay(r.Context(), claims.UserID, date)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}
