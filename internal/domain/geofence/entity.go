package geofence

import (
	"strings"
	"time"
)

// GeoPoint is always a full latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Mode string

const (
	ModeDisabled      Mode = "disabled"
	ModeLogOnly       Mode = "log_only"
	ModeRequireExact  Mode = "require_exact"
	ModeRequireRadius Mode = "require_radius"
)

var ModeValues = []string{
	string(ModeDisabled),
	string(ModeLogOnly),
	string(ModeRequireExact),
	string(ModeRequireRadius),
}

const (
	// ExactToleranceMeters is the fixed slack of require_exact.
	ExactToleranceMeters = 50.0

	DefaultRadiusMeters = 100
	MinRadiusMeters     = 10
	MaxRadiusMeters     = 5000
)

// Address is the postal address of the work location, used when no
// coordinates are stored.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Compose joins the non-empty parts into a single geocoder query.
func (a Address) Compose() string {
	street := strings.TrimSpace(a.Street)
	if n := strings.TrimSpace(a.Number); n != "" && street != "" {
		street += ", " + n
	}
	cityState := strings.TrimSpace(a.City)
	if s := strings.TrimSpace(a.State); s != "" {
		if cityState != "" {
			cityState += " - " + s
		} else {
			cityState = s
		}
	}

	var parts []string
	for _, p := range []string{street, a.Neighborhood, cityState, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) IsEmpty() bool {
	return a.Compose() == ""
}

// Settings is the organization's geofence configuration.
type Settings struct {
	OrganizationID      string
	Mode                Mode
	Latitude            *float64
	Longitude           *float64
	Address             Address
	AllowedRadiusMeters *int
	UpdatedAt           time.Time
}

// StoredPoint returns the configured coordinates, if both are set.
func (s Settings) StoredPoint() *GeoPoint {
	if s.Latitude == nil || s.Longitude == nil {
		return nil
	}
	return &GeoPoint{Latitude: *s.Latitude, Longitude: *s.Longitude}
}

// Radius returns the configured radius, or the default.
func (s Settings) Radius() int {
	if s.AllowedRadiusMeters == nil || *s.AllowedRadiusMeters <= 0 {
		return DefaultRadiusMeters
	}
	return *s.AllowedRadiusMeters
}

// Device geolocation failure codes reported by the client.
const (
	DeviceErrorPermissionDenied = "permission_denied"
	DeviceErrorUnavailable      = "unavailable"
	DeviceErrorTimeout          = "timeout"
)

var DeviceErrorValues = []string{
	DeviceErrorPermissionDenied,
	DeviceErrorUnavailable,
	DeviceErrorTimeout,
}

// Reason identifies the outcome of a location validation. It doubles as the
// message id of the localized text.
type Reason string

const (
	ReasonDisabled         Reason = "geofence.disabled"
	ReasonLogged           Reason = "geofence.logged"
	ReasonLoggedNoPosition Reason = "geofence.logged_no_position"
	ReasonWithinExact      Reason = "geofence.within_exact"
	ReasonOutsideExact     Reason = "geofence.outside_exact"
	ReasonWithinRadius     Reason = "geofence.within_radius"
	ReasonOutsideRadius    Reason = "geofence.outside_radius"
	ReasonPermissionDenied Reason = "geofence.permission_denied"
	ReasonUnavailable      Reason = "geofence.position_unavailable"
	ReasonAddressNotFound  Reason = "geofence.address_not_found"
	ReasonUnknownMode      Reason = "geofence.unknown_mode"
)

// Result is the outcome of a location check.
type Result struct {
	Valid          bool
	Reason         Reason
	Message        string
	DistanceMeters *float64
	AllowedMeters  *float64
}
