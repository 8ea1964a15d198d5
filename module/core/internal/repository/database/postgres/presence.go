package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

var _ database.PresenceRepository = (*PresenceRepo)(nil)

type PresenceRepo struct {
	db *sql.DB
}

func NewPresenceRepo(db *sql.DB) *PresenceRepo {
	return &PresenceRepo{db: db}
}

func (r *PresenceRepo) ResolveDevice(ctx context.Context, deviceID string) (string, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT member_id FROM devices WHERE device_id = $1`,
		deviceID,
	)

	var memberID string
	if err := row.Scan(&memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", database.ErrNotFound
		}
		return "", err
	}
	return memberID, nil
}

func (r *PresenceRepo) GetMemberships(ctx context.Context, memberID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.geofence_id, g.name, g.center_latitude, g.center_longitude, g.radius_meters, g.hysteresis_meters, m.status
		 FROM memberships m
		 JOIN geofences g ON g.geofence_id = m.geofence_id
		 WHERE m.member_id = $1
		 ORDER BY g.geofence_id`,
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Membership
	for rows.Next() {
		var ms domain.Membership
		if err := rows.Scan(
			&ms.Geofence.ID, &ms.Geofence.Name,
			&ms.Geofence.Center.Lat, &ms.Geofence.Center.Lon,
			&ms.Geofence.RadiusMeters, &ms.Geofence.HysteresisMeters,
			&ms.Status,
		); err != nil {
			return nil, err
		}
		results = append(results, ms)
	}
	return results, rows.Err()
}

func (r *PresenceRepo) UpdateStatus(ctx context.Context, memberID, geofenceID string, status domain.PresenceStatus, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET status = $3, updated_at = $4 WHERE member_id = $1 AND geofence_id = $2`,
		memberID, geofenceID, status, at,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PresenceRepo) InsertPing(ctx context.Context, memberID string, ping *domain.LocationPing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO location_pings (device_id, member_id, latitude, longitude, accuracy_meters, timestamp) VALUES ($1, $2, $3, $4, $5, $6)`,
		ping.DeviceID, memberID, ping.Location.Lat, ping.Location.Lon, ping.AccuracyMeters, ping.Timestamp,
	)
	return err
}
