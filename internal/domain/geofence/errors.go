package geofence

import "errors"

var (
	ErrSettingsNotFound    = errors.New("geofence settings not found")
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("geolocation position unavailable")
	ErrAddressNotFound     = errors.New("work address could not be geocoded")
)
