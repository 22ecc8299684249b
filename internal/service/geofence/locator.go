package geofence

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
)

// ReportedLocator serves the position the client device sent with the
// request, or the failure it reported instead.
type ReportedLocator struct {
	position    *geofence.GeoPoint
	deviceError string
}

func NewReportedLocator(position *geofence.GeoPoint, deviceError string) ReportedLocator {
	return ReportedLocator{position: position, deviceError: deviceError}
}

// Locate implements geofence.Locator.
func (l ReportedLocator) Locate(ctx context.Context) (geofence.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return geofence.GeoPoint{}, err
	}
	switch l.deviceError {
	case geofence.DeviceErrorPermissionDenied:
		return geofence.GeoPoint{}, geofence.ErrPermissionDenied
	case geofence.DeviceErrorTimeout:
		return geofence.GeoPoint{}, context.DeadlineExceeded
	case geofence.DeviceErrorUnavailable:
		return geofence.GeoPoint{}, geofence.ErrPositionUnavailable
	}
	if l.position == nil {
		return geofence.GeoPoint{}, geofence.ErrPositionUnavailable
	}
	return *l.position, nil
}
