package domain

import "time"

type Member struct {
	ID   string `json:"member_id"`
	Name string `json:"name"`
}

// MemberStatus is one row of the dashboard roster.
type MemberStatus struct {
	MemberID     string         `json:"member_id"`
	MemberName   string         `json:"member_name"`
	GeofenceID   string         `json:"geofence_id"`
	GeofenceName string         `json:"geofence_name"`
	Status       PresenceStatus `json:"status"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// LocationPing is an inbound GPS fix as reported by a member's device.
type LocationPing struct {
	DeviceID       string    `json:"device_id"`
	Location       GeoPoint  `json:"location"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	Timestamp      time.Time `json:"timestamp"`
}

type HistoryQuery struct {
	MemberID string
	Start    time.Time
	End      time.Time
}
