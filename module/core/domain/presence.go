package domain

import "time"

type PresenceStatus string

const (
	StatusInRoom PresenceStatus = "IN_ROOM"
	StatusAway   PresenceStatus = "AWAY"
)

// ValidStatus reports whether s is one of the two presence variants.
func ValidStatus(s PresenceStatus) bool {
	return s == StatusInRoom || s == StatusAway
}

// Geofence is a circular region around a room, with a hysteresis margin
// that damps status flapping near the boundary.
type Geofence struct {
	ID               string   `json:"geofence_id"`
	Name             string   `json:"name"`
	Center           GeoPoint `json:"center"`
	RadiusMeters     float64  `json:"radius_meters"`
	HysteresisMeters float64  `json:"hysteresis_meters"`
}

// Membership pairs a geofence with a member's current status for it,
// as read from storage immediately before evaluation.
type Membership struct {
	Geofence Geofence
	Status   PresenceStatus
}

type StatusChange struct {
	MemberID     string         `json:"member_id"`
	GeofenceID   string         `json:"geofence_id"`
	GeofenceName string         `json:"geofence_name"`
	OldStatus    PresenceStatus `json:"old_status"`
	NewStatus    PresenceStatus `json:"new_status"`
	// DistanceMeters is -1 for manual overrides, where no fix was involved.
	DistanceMeters float64   `json:"distance_meters"`
	ChangedAt      time.Time `json:"changed_at"`
}
