package geofence

import "errors"

var (
	// ErrInvalidCoordinate marks a latitude/longitude that is non-finite
	// or out of range. Matches via errors.Is on wrapped errors.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidFenceConfig marks a geofence whose radius/hysteresis
	// relation is malformed.
	ErrInvalidFenceConfig = errors.New("invalid geofence config")
)
