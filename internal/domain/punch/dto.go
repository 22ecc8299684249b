package punch

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	UserID         string   `json:"-"`
	OrganizationID string   `json:"-"`
	Type           Type     `json:"type"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`

	// LocationError is the device's geolocation failure code, when the
	// position could not be obtained: "permission_denied", "unavailable"
	// or "timeout".
	LocationError string `json:"location_error,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(string(r.Type)) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: entry, lunch_out, lunch_in, exit",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be sent together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.LocationError != "" && !validator.IsInSlice(r.LocationError, geofence.DeviceErrorValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_error",
			Message: "location_error must be one of: permission_denied, unavailable, timeout",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DevicePosition converts the request's coordinates into a point, if any.
func (r *SubmitRequest) DevicePosition() *geofence.GeoPoint {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &geofence.GeoPoint{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type DecisionResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type LocationResponse struct {
	Valid          bool     `json:"valid"`
	Message        string   `json:"message"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

type EventResponse struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Timestamp      string   `json:"timestamp"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

type SubmitResponse struct {
	Event    EventResponse     `json:"event"`
	Decision DecisionResponse  `json:"decision"`
	Location *LocationResponse `json:"location,omitempty"`
	NextType *string           `json:"next_type,omitempty"`
}

type DayResponse struct {
	Date     string          `json:"date"`
	Events   []EventResponse `json:"events"`
	NextType *string         `json:"next_type,omitempty"`
}
