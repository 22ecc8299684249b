package geofence

import "context"

type SettingsRepository interface {
	// GetByOrganization returns ErrSettingsNotFound when the organization has
	// no geofence configured.
	GetByOrganization(ctx context.Context, organizationID string) (Settings, error)
}

// Geocoder resolves a postal address to coordinates. A miss must be
// reported as ErrAddressNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeoPoint, error)
}

// Locator obtains the device position. Permission failures must be reported
// as ErrPermissionDenied; anything else is treated as unavailable.
type Locator interface {
	Locate(ctx context.Context) (GeoPoint, error)
}
