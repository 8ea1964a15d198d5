package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/geofence"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

// GeofenceService owns geofence configuration. Validation happens here,
// before a record can ever reach the evaluation engine; the hysteresis
// margin is always explicit, never derived from the radius.
type GeofenceService struct {
	repo database.GeofenceRepository
}

func NewGeofenceService(repo database.GeofenceRepository) *GeofenceService {
	return &GeofenceService{repo: repo}
}

func (s *GeofenceService) Create(ctx context.Context, name string, center domain.GeoPoint, radiusMeters, hysteresisMeters float64) (*domain.Geofence, error) {
	if err := validateFenceSpec(center, radiusMeters, hysteresisMeters); err != nil {
		return nil, err
	}

	gf := &domain.Geofence{
		ID:               uuid.NewString(),
		Name:             name,
		Center:           center,
		RadiusMeters:     radiusMeters,
		HysteresisMeters: hysteresisMeters,
	}
	if err := s.repo.InsertGeofence(ctx, gf); err != nil {
		return nil, fmt.Errorf("insert geofence: %w", err)
	}
	return gf, nil
}

func (s *GeofenceService) Update(ctx context.Context, gf *domain.Geofence) error {
	if err := validateFenceSpec(gf.Center, gf.RadiusMeters, gf.HysteresisMeters); err != nil {
		return err
	}
	return s.repo.UpdateGeofence(ctx, gf)
}

func (s *GeofenceService) Get(ctx context.Context, geofenceID string) (*domain.Geofence, error) {
	return s.repo.GetGeofence(ctx, geofenceID)
}

func (s *GeofenceService) List(ctx context.Context) ([]domain.Geofence, error) {
	return s.repo.GetAllGeofences(ctx)
}

func validateFenceSpec(center domain.GeoPoint, radiusMeters, hysteresisMeters float64) error {
	if err := geofence.ValidatePoint(center); err != nil {
		return err
	}
	return geofence.ValidateFence(radiusMeters, hysteresisMeters)
}
