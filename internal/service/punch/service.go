package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	geofenceService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/punchgate"
	"github.com/google/uuid"
)

// Gate decides whether a punch attempt is inside the employee's schedule.
type Gate interface {
	Decide(ctx context.Context, p profile.Profile, now time.Time) punchgate.Decision
}

// LocationValidator checks the device position against the work location.
type LocationValidator interface {
	Validate(ctx context.Context, organizationID string, locator geofence.Locator) geofence.Result
}

type PunchServiceImpl struct {
	profiles profile.Repository
	events   punch.EventRepository
	gate     Gate
	location LocationValidator
	timezone *time.Location
	now      func() time.Time
}

func NewPunchService(
	profiles profile.Repository,
	events punch.EventRepository,
	gate Gate,
	location LocationValidator,
	timezone *time.Location,
) punch.Service {
	if timezone == nil {
		timezone = time.UTC
	}
	return &PunchServiceImpl{
		profiles: profiles,
		events:   events,
		gate:     gate,
		location: location,
		timezone: timezone,
		now:      time.Now,
	}
}

// Check implements punch.Service.
func (s *PunchServiceImpl) Check(ctx context.Context, userID, organizationID string) (punch.DecisionResponse, error) {
	p := s.resolveProfile(ctx, userID, organizationID)
	d := s.gate.Decide(ctx, p, s.now().In(s.timezone))
	return punch.DecisionResponse{Allowed: d.Allowed, Reason: d.Reason}, nil
}

// Submit implements punch.Service.
func (s *PunchServiceImpl) Submit(ctx context.Context, req punch.SubmitRequest) (punch.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.SubmitResponse{}, err
	}

	now := s.now().In(s.timezone)
	p := s.resolveProfile(ctx, req.UserID, req.OrganizationID)

	today, err := s.dayEvents(ctx, req.UserID, now)
	if err != nil {
		return punch.SubmitResponse{}, err
	}
	if err := checkSequence(today, req.Type); err != nil {
		return punch.SubmitResponse{}, err
	}

	decision := s.gate.Decide(ctx, p, now)
	if !decision.Allowed {
		return punch.SubmitResponse{}, &punch.DeniedError{Reason: decision.Reason}
	}

	loc := s.location.Validate(ctx, p.OrganizationID, geofenceService.NewReportedLocator(req.DevicePosition(), req.LocationError))
	if !loc.Valid {
		slog.Info("Punch location rejected",
			"user_id", req.UserID,
			"reason", loc.Reason,
		)
		return punch.SubmitResponse{}, &punch.LocationRejectedError{
			Reason:         loc.Reason,
			Message:        loc.Message,
			DistanceMeters: loc.DistanceMeters,
		}
	}

	event := punch.Event{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		OrganizationID: p.OrganizationID,
		Type:           req.Type,
		Timestamp:      now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		DistanceMeters: loc.DistanceMeters,
	}
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return punch.SubmitResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	resp := punch.SubmitResponse{
		Event:    s.toEventResponse(created),
		Decision: punch.DecisionResponse{Allowed: true},
		Location: &punch.LocationResponse{
			Valid:          loc.Valid,
			Message:        loc.Message,
			DistanceMeters: loc.DistanceMeters,
		},
	}
	if next, ok := punch.NextType(append(today, created)); ok {
		n := string(next)
		resp.NextType = &n
	}

	return resp, nil
}

// ListDay implements punch.Service.
func (s *PunchServiceImpl) ListDay(ctx context.Context, userID string, date time.Time) (punch.DayResponse, error) {
	events, err := s.dayEvents(ctx, userID, date)
	if err != nil {
		return punch.DayResponse{}, err
	}

	resp := punch.DayResponse{
		Date:   schedule.DateOf(date.In(s.timezone)).Format("2006-01-02"),
		Events: make([]punch.EventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, s.toEventResponse(e))
	}
	if next, ok := punch.NextType(events); ok {
		n := string(next)
		resp.NextType = &n
	}

	return resp, nil
}

// resolveProfile falls back to a bare profile when the directory can't be
// read. A bare profile has no schedule, so the gate allows.
func (s *PunchServiceImpl) resolveProfile(ctx context.Context, userID, organizationID string) profile.Profile {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return p
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		slog.Warn("Profile lookup failed, evaluating punch without schedule",
			"user_id", userID,
			"error", err,
		)
	}
	return profile.Profile{UserID: userID, OrganizationID: organizationID}
}

func (s *PunchServiceImpl) dayEvents(ctx context.Context, userID string, day time.Time) ([]punch.Event, error) {
	start := schedule.DateOf(day.In(s.timezone))
	events, err := s.events.ListByUser(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	return events, nil
}

// checkSequence enforces one punch of each type per day in the order
// entry, lunch_out, lunch_in, exit.
func checkSequence(today []punch.Event, t punch.Type) error {
	next, ok := punch.NextType(today)
	if !ok {
		return punch.ErrDayComplete
	}
	if _, done := punch.FirstOfEach(today)[t]; done {
		return punch.ErrPunchAlreadyRecorded
	}
	if t != next {
		return punch.ErrPunchOutOfOrder
	}
	return nil
}

func (s *PunchServiceImpl) toEventResponse(e punch.Event) punch.EventResponse {
	return punch.EventResponse{
		ID:             e.ID,
		Type:           string(e.Type),
		Timestamp:      e.Timestamp.In(s.timezone).Format(time.RFC3339),
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		DistanceMeters: e.DistanceMeters,
	}
}
