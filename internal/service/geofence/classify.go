package geofence

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geo"
)

// DistanceMeters is the haversine distance between two points.
func DistanceMeters(a, b geofence.GeoPoint) float64 {
	return geo.HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Classify judges a measured distance under mode. allowedRadius is only
// read in require_radius mode; nil means the default radius and values
// outside the accepted range are clamped. Boundaries are inclusive.
// The returned Result carries no localized message.
func Classify(distance float64, mode geofence.Mode, allowedRadius *int) geofence.Result {
	res := geofence.Result{DistanceMeters: &distance}

	switch mode {
	case geofence.ModeDisabled:
		res.Valid = true
		res.Reason = geofence.ReasonDisabled
		res.DistanceMeters = nil

	case geofence.ModeLogOnly:
		res.Valid = true
		res.Reason = geofence.ReasonLogged

	case geofence.ModeRequireExact:
		allowed := geofence.ExactToleranceMeters
		res.AllowedMeters = &allowed
		res.Valid = distance <= allowed
		res.Reason = geofence.ReasonOutsideExact
		if res.Valid {
			res.Reason = geofence.ReasonWithinExact
		}

	case geofence.ModeRequireRadius:
		allowed := float64(clampRadius(allowedRadius))
		res.AllowedMeters = &allowed
		res.Valid = distance <= allowed
		res.Reason = geofence.ReasonOutsideRadius
		if res.Valid {
			res.Reason = geofence.ReasonWithinRadius
		}

	default:
		res.Valid = true
		res.Reason = geofence.ReasonUnknownMode
	}

	return res
}

func clampRadius(r *int) int {
	if r == nil {
		return geofence.DefaultRadiusMeters
	}
	switch {
	case *r < geofence.MinRadiusMeters:
		return geofence.MinRadiusMeters
	case *r > geofence.MaxRadiusMeters:
		return geofence.MaxRadiusMeters
	}
	return *r
}
