// Package geofence is the presence evaluation engine: coordinate
// validation, great-circle distance, and the hysteresis decision that
// flips a member between IN_ROOM and AWAY. It is pure computation with
// no I/O, safe to call concurrently.
package geofence

import (
	"fmt"
	"math"

	"github.com/jschady/geodorm/module/core/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000

// ValidatePoint rejects non-finite and out-of-range coordinates.
func ValidatePoint(p domain.GeoPoint) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return fmt.Errorf("%w: latitude is not finite (%v)", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: longitude is not finite (%v)", ErrInvalidCoordinate, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90, got %v", ErrInvalidCoordinate, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180, got %v", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in meters,
// computed with the Haversine formula on a sphere of EarthRadiusMeters.
// Both points are re-validated here rather than trusted from callers.
func Distance(a, b domain.GeoPoint) (float64, error) {
	if err := ValidatePoint(a); err != nil {
		return 0, err
	}
	if err := ValidatePoint(b); err != nil {
		return 0, err
	}
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon), nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
