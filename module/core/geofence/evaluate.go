package geofence

import (
	"github.com/jschady/geodorm/module/core/domain"
)

// Result is the per-geofence outcome of a batch evaluation. A non-nil
// Err marks a failure entry for that geofence; the other fields are
// meaningless in that case.
type Result struct {
	GeofenceID        string
	DistanceMeters    float64
	InsideBoundary    bool
	HysteresisApplied bool
	StatusChanged     bool
	NewStatus         domain.PresenceStatus
	Err               error
}

// EvaluateAll runs the hysteresis decision for one location fix against
// every membership. A malformed location fails the whole batch up front,
// since it would fail identically for every entry. Anything wrong with a
// single membership (bad fence config, bad center coordinate) becomes a
// failure Result for that geofence and the rest of the batch proceeds.
// Results keep the input order; no deduplication by geofence id.
func EvaluateAll(location domain.GeoPoint, memberships []domain.Membership) ([]Result, error) {
	if err := ValidatePoint(location); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(memberships))
	for _, m := range memberships {
		r := Result{GeofenceID: m.Geofence.ID}

		if err := ValidateFence(m.Geofence.RadiusMeters, m.Geofence.HysteresisMeters); err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}

		dist, err := Distance(location, m.Geofence.Center)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}

		d := Decide(dist, m.Geofence.RadiusMeters, m.Geofence.HysteresisMeters, m.Status)
		r.DistanceMeters = dist
		r.InsideBoundary = dist <= m.Geofence.RadiusMeters
		r.HysteresisApplied = d.HysteresisApplied
		r.StatusChanged = d.Changed
		r.NewStatus = d.NewStatus
		results = append(results, r)
	}
	return results, nil
}
