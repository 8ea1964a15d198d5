package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/geofence"
	"github.com/jschady/geodorm/module/core/internal/metrics"
	"github.com/jschady/geodorm/module/core/internal/repository/cache"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
	"github.com/jschady/geodorm/module/core/internal/repository/publisher"
)

// ErrInvalidStatus is returned by SetStatus for anything other than the
// two presence variants.
var ErrInvalidStatus = errors.New("invalid presence status")

// PresenceService is the glue between an inbound location ping and the
// pure evaluation engine: it resolves device to member, loads the
// memberships, runs the batch evaluation, and applies the outcomes to
// storage and the event stream.
type PresenceService struct {
	repo  database.PresenceRepository
	pub   publisher.StatusPublisher
	cache cache.RosterCache
	log   *logrus.Logger
}

func NewPresenceService(repo database.PresenceRepository, pub publisher.StatusPublisher, rosterCache cache.RosterCache, log *logrus.Logger) *PresenceService {
	return &PresenceService{
		repo:  repo,
		pub:   pub,
		cache: rosterCache,
		log:   log,
	}
}

func (s *PresenceService) HandlePing(ctx context.Context, ping *domain.LocationPing) error {
	memberID, err := s.repo.ResolveDevice(ctx, ping.DeviceID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.PingsDroppedTotal.Inc()
			s.log.WithField("device_id", ping.DeviceID).Warn("ping from unknown device, dropped")
			return nil
		}
		return fmt.Errorf("resolve device: %w", err)
	}

	memberships, err := s.repo.GetMemberships(ctx, memberID)
	if err != nil {
		return fmt.Errorf("load memberships: %w", err)
	}

	results, err := geofence.EvaluateAll(ping.Location, memberships)
	if err != nil {
		metrics.PingsDroppedTotal.Inc()
		return fmt.Errorf("evaluate ping from %s: %w", ping.DeviceID, err)
	}

	for i, r := range results {
		metrics.EvaluationsTotal.Inc()

		if r.Err != nil {
			// bad geofence record, skip it and keep going; it will be
			// retried on the next ping once the record is fixed
			metrics.MembershipsSkippedTotal.Inc()
			s.log.WithFields(logrus.Fields{
				"member_id":   memberID,
				"geofence_id": r.GeofenceID,
			}).WithError(r.Err).Warn("membership skipped")
			continue
		}

		if !r.StatusChanged {
			continue
		}

		if err := s.repo.UpdateStatus(ctx, memberID, r.GeofenceID, r.NewStatus, ping.Timestamp); err != nil {
			return fmt.Errorf("update status for geofence %s: %w", r.GeofenceID, err)
		}
		metrics.StatusChangesTotal.Inc()

		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WithError(err).Warn("roster cache invalidate failed")
		}

		change := &domain.StatusChange{
			MemberID:       memberID,
			GeofenceID:     r.GeofenceID,
			GeofenceName:   memberships[i].Geofence.Name,
			OldStatus:      memberships[i].Status,
			NewStatus:      r.NewStatus,
			DistanceMeters: r.DistanceMeters,
			ChangedAt:      ping.Timestamp,
		}
		if err := s.pub.PublishChange(ctx, change); err != nil {
			return fmt.Errorf("publish change: %w", err)
		}
	}

	if err := s.repo.InsertPing(ctx, memberID, ping); err != nil {
		return fmt.Errorf("record ping: %w", err)
	}
	return nil
}

// SetStatus applies a manual status override, persisted and published
// the same way an automatic transition is. The change carries a distance
// of -1 since no fix was involved.
func (s *PresenceService) SetStatus(ctx context.Context, memberID, geofenceID string, status domain.PresenceStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	memberships, err := s.repo.GetMemberships(ctx, memberID)
	if err != nil {
		return fmt.Errorf("load memberships: %w", err)
	}

	var current *domain.Membership
	for i := range memberships {
		if memberships[i].Geofence.ID == geofenceID {
			current = &memberships[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("membership %s/%s: %w", memberID, geofenceID, database.ErrNotFound)
	}
	if current.Status == status {
		return nil
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, memberID, geofenceID, status, now); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	metrics.StatusChangesTotal.Inc()

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("roster cache invalidate failed")
	}

	change := &domain.StatusChange{
		MemberID:       memberID,
		GeofenceID:     geofenceID,
		GeofenceName:   current.Geofence.Name,
		OldStatus:      current.Status,
		NewStatus:      status,
		DistanceMeters: -1,
		ChangedAt:      now,
	}
	if err := s.pub.PublishChange(ctx, change); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}
