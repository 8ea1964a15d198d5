package postgres

import (
	"context"
	"database/sql"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

var _ database.RosterRepository = (*RosterRepo)(nil)

type RosterRepo struct {
	db *sql.DB
}

func NewRosterRepo(db *sql.DB) *RosterRepo {
	return &RosterRepo{db: db}
}

const rosterQuery = `SELECT m.member_id, mb.name, m.geofence_id, g.name, m.status, m.updated_at
 FROM memberships m
 JOIN members mb ON mb.member_id = m.member_id
 JOIN geofences g ON g.geofence_id = m.geofence_id`

func (r *RosterRepo) GetRoster(ctx context.Context) ([]domain.MemberStatus, error) {
	rows, err := r.db.QueryContext(ctx, rosterQuery+` ORDER BY mb.name, g.name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanStatuses(rows)
}

func (r *RosterRepo) GetMemberStatuses(ctx context.Context, memberID string) ([]domain.MemberStatus, error) {
	rows, err := r.db.QueryContext(ctx, rosterQuery+` WHERE m.member_id = $1 ORDER BY g.name`, memberID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanStatuses(rows)
}

func scanStatuses(rows *sql.Rows) ([]domain.MemberStatus, error) {
	var results []domain.MemberStatus
	for rows.Next() {
		var ms domain.MemberStatus
		if err := rows.Scan(&ms.MemberID, &ms.MemberName, &ms.GeofenceID, &ms.GeofenceName, &ms.Status, &ms.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, ms)
	}
	return results, rows.Err()
}

func (r *RosterRepo) GetPingHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT device_id, latitude, longitude, accuracy_meters, timestamp
		 FROM location_pings
		 WHERE member_id = $1 AND timestamp >= $2 AND timestamp <= $3
		 ORDER BY timestamp ASC`,
		query.MemberID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.LocationPing
	for rows.Next() {
		var p domain.LocationPing
		if err := rows.Scan(&p.DeviceID, &p.Location.Lat, &p.Location.Lon, &p.AccuracyMeters, &p.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
