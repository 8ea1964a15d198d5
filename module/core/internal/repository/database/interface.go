package database

import (
	"context"
	"errors"
	"time"

	"github.com/jschady/geodorm/module/core/domain"
)

// ErrNotFound is returned when a device, member, or geofence id does not
// resolve to a row.
var ErrNotFound = errors.New("not found")

type PresenceRepository interface {
	// ResolveDevice maps a reporting device to its member id.
	ResolveDevice(ctx context.Context, deviceID string) (string, error)
	// GetMemberships loads the member's geofences with current statuses.
	GetMemberships(ctx context.Context, memberID string) ([]domain.Membership, error)
	UpdateStatus(ctx context.Context, memberID, geofenceID string, status domain.PresenceStatus, at time.Time) error
	InsertPing(ctx context.Context, memberID string, ping *domain.LocationPing) error
}

type RosterRepository interface {
	GetRoster(ctx context.Context) ([]domain.MemberStatus, error)
	GetMemberStatuses(ctx context.Context, memberID string) ([]domain.MemberStatus, error)
	GetPingHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error)
}

type GeofenceRepository interface {
	InsertGeofence(ctx context.Context, gf *domain.Geofence) error
	UpdateGeofence(ctx context.Context, gf *domain.Geofence) error
	GetGeofence(ctx context.Context, geofenceID string) (*domain.Geofence, error)
	GetAllGeofences(ctx context.Context) ([]domain.Geofence, error)
}
