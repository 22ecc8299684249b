package geofence

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
)

// Service validates a device position against the organization's work
// location.
type Service struct {
	settings       geofence.SettingsRepository
	geocoder       geofence.Geocoder
	lookupTimeout  time.Duration
	locateTimeout  time.Duration
	geocodeTimeout time.Duration
}

func NewService(
	settings geofence.SettingsRepository,
	geocoder geofence.Geocoder,
	lookupTimeout time.Duration,
	locateTimeout time.Duration,
	geocodeTimeout time.Duration,
) *Service {
	return &Service{
		settings:       settings,
		geocoder:       geocoder,
		lookupTimeout:  lookupTimeout,
		locateTimeout:  locateTimeout,
		geocodeTimeout: geocodeTimeout,
	}
}

// Validate checks the position served by locator. Missing or unreadable
// settings count as disabled. The device is only asked for its position
// when the mode needs it, and a fresh position is requested every call.
func (s *Service) Validate(ctx context.Context, organizationID string, locator geofence.Locator) geofence.Result {
	settings, err := s.loadSettings(ctx, organizationID)
	if err != nil {
		slog.Warn("Geofence settings lookup failed, skipping location check",
			"organization_id", organizationID,
			"error", err,
		)
		return s.localize(ctx, Classify(0, geofence.ModeDisabled, nil), 0)
	}

	switch settings.Mode {
	case geofence.ModeDisabled:
		return s.localize(ctx, Classify(0, geofence.ModeDisabled, nil), 0)
	case geofence.ModeLogOnly, geofence.ModeRequireExact, geofence.ModeRequireRadius:
	default:
		slog.Warn("Unknown geofence mode, allowing punch",
			"organization_id", organizationID,
			"mode", settings.Mode,
		)
		return s.localize(ctx, geofence.Result{Valid: true, Reason: geofence.ReasonUnknownMode}, 0)
	}
	logOnly := settings.Mode == geofence.ModeLogOnly

	work, err := s.workLocation(ctx, settings)
	if err != nil {
		slog.Warn("Work location could not be resolved",
			"organization_id", organizationID,
			"mode", settings.Mode,
			"error", err,
		)
		return s.localize(ctx, geofence.Result{Valid: logOnly, Reason: geofence.ReasonAddressNotFound}, 0)
	}

	device, err := s.locate(ctx, locator)
	if err != nil {
		return s.localize(ctx, positionFailure(err, logOnly), 0)
	}

	distance := DistanceMeters(device, work)
	res := Classify(distance, settings.Mode, settings.AllowedRadiusMeters)
	radius := 0.0
	if res.AllowedMeters != nil {
		radius = *res.AllowedMeters
	}
	return s.localize(ctx, res, radius)
}

func (s *Service) loadSettings(ctx context.Context, organizationID string) (geofence.Settings, error) {
	ctx, cancel := withTimeout(ctx, s.lookupTimeout)
	defer cancel()

	settings, err := s.settings.GetByOrganization(ctx, organizationID)
	if errors.Is(err, geofence.ErrSettingsNotFound) {
		return geofence.Settings{OrganizationID: organizationID, Mode: geofence.ModeDisabled}, nil
	}
	return settings, err
}

// workLocation prefers stored coordinates and geocodes the postal address
// otherwise.
func (s *Service) workLocation(ctx context.Context, settings geofence.Settings) (geofence.GeoPoint, error) {
	if p := settings.StoredPoint(); p != nil {
		return *p, nil
	}
	if settings.Address.IsEmpty() || s.geocoder == nil {
		return geofence.GeoPoint{}, geofence.ErrAddressNotFound
	}

	ctx, cancel := withTimeout(ctx, s.geocodeTimeout)
	defer cancel()
	return s.geocoder.Geocode(ctx, settings.Address.Compose())
}

func (s *Service) locate(ctx context.Context, locator geofence.Locator) (geofence.GeoPoint, error) {
	if locator == nil {
		return geofence.GeoPoint{}, geofence.ErrPositionUnavailable
	}
	ctx, cancel := withTimeout(ctx, s.locateTimeout)
	defer cancel()
	return locator.Locate(ctx)
}

// positionFailure maps a device failure. Only log_only lets the punch
// through without a position.
func positionFailure(err error, logOnly bool) geofence.Result {
	if logOnly {
		return geofence.Result{Valid: true, Reason: geofence.ReasonLoggedNoPosition}
	}
	if errors.Is(err, geofence.ErrPermissionDenied) {
		return geofence.Result{Valid: false, Reason: geofence.ReasonPermissionDenied}
	}
	return geofence.Result{Valid: false, Reason: geofence.ReasonUnavailable}
}

func (s *Service) localize(ctx context.Context, res geofence.Result, radius float64) geofence.Result {
	data := map[string]any{"Radius": int(math.Round(radius))}
	if res.DistanceMeters != nil {
		data["Distance"] = int(math.Round(*res.DistanceMeters))
	}
	res.Message = i18n.T(ctx, string(res.Reason), data)
	return res
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
