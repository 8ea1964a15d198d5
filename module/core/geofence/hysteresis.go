package geofence

import (
	"fmt"

	"github.com/jschady/geodorm/module/core/domain"
)

// Decision is the outcome of one hysteresis evaluation.
type Decision struct {
	NewStatus domain.PresenceStatus
	Changed   bool
	// HysteresisApplied is set when the distance fell strictly inside the
	// dead band and the current status was kept.
	HysteresisApplied bool
}

// ValidateFence checks the radius/hysteresis relation a geofence must
// satisfy before it may be evaluated. hysteresis == 0 is legal and
// collapses the dead band to the bare radius.
func ValidateFence(radiusMeters, hysteresisMeters float64) error {
	if radiusMeters <= 0 {
		return fmt.Errorf("%w: radius_meters must be positive, got %v", ErrInvalidFenceConfig, radiusMeters)
	}
	if hysteresisMeters < 0 {
		return fmt.Errorf("%w: hysteresis_meters must not be negative, got %v", ErrInvalidFenceConfig, hysteresisMeters)
	}
	if hysteresisMeters >= radiusMeters {
		return fmt.Errorf("%w: hysteresis_meters (%v) must be less than radius_meters (%v)",
			ErrInvalidFenceConfig, hysteresisMeters, radiusMeters)
	}
	return nil
}

// Decide maps a distance to the next presence status.
//
// Entering requires distance <= radius - hysteresis, leaving requires
// distance >= radius + hysteresis. Strictly between the two thresholds
// the current status is kept no matter which direction the member is
// moving, so flipping twice in a row takes genuine movement of at least
// 2*hysteresis meters. Callers must have validated the fence config;
// Decide itself is total for finite, non-negative inputs.
func Decide(distanceMeters, radiusMeters, hysteresisMeters float64, current domain.PresenceStatus) Decision {
	enter := radiusMeters - hysteresisMeters
	exit := radiusMeters + hysteresisMeters

	switch {
	case distanceMeters <= enter:
		if current == domain.StatusAway {
			return Decision{NewStatus: domain.StatusInRoom, Changed: true}
		}
		return Decision{NewStatus: current}
	case distanceMeters >= exit:
		if current == domain.StatusInRoom {
			return Decision{NewStatus: domain.StatusAway, Changed: true}
		}
		return Decision{NewStatus: current}
	default:
		return Decision{NewStatus: current, HysteresisApplied: true}
	}
}
