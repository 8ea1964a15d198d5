package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

var _ database.GeofenceRepository = (*GeofenceRepo)(nil)

type GeofenceRepo struct {
	db *sql.DB
}

func NewGeofenceRepo(db *sql.DB) *GeofenceRepo {
	return &GeofenceRepo{db: db}
}

func (r *GeofenceRepo) InsertGeofence(ctx context.Context, gf *domain.Geofence) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO geofences (geofence_id, name, center_latitude, center_longitude, radius_meters, hysteresis_meters) VALUES ($1, $2, $3, $4, $5, $6)`,
		gf.ID, gf.Name, gf.Center.Lat, gf.Center.Lon, gf.RadiusMeters, gf.HysteresisMeters,
	)
	return err
}

func (r *GeofenceRepo) UpdateGeofence(ctx context.Context, gf *domain.Geofence) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE geofences SET name = $2, center_latitude = $3, center_longitude = $4, radius_meters = $5, hysteresis_meters = $6 WHERE geofence_id = $1`,
		gf.ID, gf.Name, gf.Center.Lat, gf.Center.Lon, gf.RadiusMeters, gf.HysteresisMeters,
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

func (r *GeofenceRepo) GetGeofence(ctx context.Context, geofenceID string) (*domain.Geofence, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT geofence_id, name, center_latitude, center_longitude, radius_meters, hysteresis_meters FROM geofences WHERE geofence_id = $1`,
		geofenceID,
	)

	var gf domain.Geofence
	if err := row.Scan(&gf.ID, &gf.Name, &gf.Center.Lat, &gf.Center.Lon, &gf.RadiusMeters, &gf.HysteresisMeters); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &gf, nil
}

func (r *GeofenceRepo) GetAllGeofences(ctx context.Context) ([]domain.Geofence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT geofence_id, name, center_latitude, center_longitude, radius_meters, hysteresis_meters FROM geofences ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Geofence
	for rows.Next() {
		var gf domain.Geofence
		if err := rows.Scan(&gf.ID, &gf.Name, &gf.Center.Lat, &gf.Center.Lon, &gf.RadiusMeters, &gf.HysteresisMeters); err != nil {
			return nil, err
		}
		results = append(results, gf)
	}
	return results, rows.Err()
}
