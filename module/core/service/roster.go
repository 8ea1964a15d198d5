package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/metrics"
	"github.com/jschady/geodorm/module/core/internal/repository/cache"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

type RosterService struct {
	repo  database.RosterRepository
	cache cache.RosterCache
	log   *logrus.Logger
}

func NewRosterService(repo database.RosterRepository, rosterCache cache.RosterCache, log *logrus.Logger) *RosterService {
	return &RosterService{repo: repo, cache: rosterCache, log: log}
}

// GetRoster serves the dashboard roster from the cache snapshot when
// present, falling back to postgres. Cache failures degrade to DB reads,
// never to request failures.
func (s *RosterService) GetRoster(ctx context.Context) ([]domain.MemberStatus, error) {
	roster, err := s.cache.GetRoster(ctx)
	if err == nil {
		metrics.RosterCacheHitsTotal.Inc()
		return roster, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.WithError(err).Warn("roster cache read failed")
	}
	metrics.RosterCacheMissesTotal.Inc()

	roster, err = s.repo.GetRoster(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetRoster(ctx, roster); err != nil {
		s.log.WithError(err).Warn("roster cache write failed")
	}
	return roster, nil
}

func (s *RosterService) GetMemberStatuses(ctx context.Context, memberID string) ([]domain.MemberStatus, error) {
	return s.repo.GetMemberStatuses(ctx, memberID)
}

func (s *RosterService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error) {
	return s.repo.GetPingHistory(ctx, query)
}
