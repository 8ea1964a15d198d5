package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/cache"
)

type mockRosterRepo struct {
	getRosterFn         func(ctx context.Context) ([]domain.MemberStatus, error)
	getMemberStatusesFn func(ctx context.Context, memberID string) ([]domain.MemberStatus, error)
	getPingHistoryFn    func(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error)
}

func (m *mockRosterRepo) GetRoster(ctx context.Context) ([]domain.MemberStatus, error) {
	return m.getRosterFn(ctx)
}

func (m *mockRosterRepo) GetMemberStatuses(ctx context.Context, memberID string) ([]domain.MemberStatus, error) {
	return m.getMemberStatusesFn(ctx, memberID)
}

func (m *mockRosterRepo) GetPingHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error) {
	return m.getPingHistoryFn(ctx, query)
}

func sampleRoster() []domain.MemberStatus {
	return []domain.MemberStatus{
		{MemberID: "member-1", MemberName: "Alex", GeofenceID: "gf-1", GeofenceName: "room 101", Status: domain.StatusInRoom, UpdatedAt: time.Unix(1715003456, 0)},
	}
}

func TestGetRoster_CacheHit(t *testing.T) {
	repoCalled := false
	repo := &mockRosterRepo{
		getRosterFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			repoCalled = true
			return nil, errors.New("should not be called")
		},
	}
	rc := &mockRosterCache{
		getFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			return sampleRoster(), nil
		},
	}

	svc := NewRosterService(repo, rc, testLogger())

	roster, err := svc.GetRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repoCalled {
		t.Error("expected cache hit to skip the repository")
	}
	if len(roster) != 1 || roster[0].MemberID != "member-1" {
		t.Errorf("unexpected roster: %+v", roster)
	}
}

func TestGetRoster_CacheMissFallsThrough(t *testing.T) {
	repo := &mockRosterRepo{
		getRosterFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			return sampleRoster(), nil
		},
	}
	var written []domain.MemberStatus
	rc := &mockRosterCache{
		getFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			return nil, cache.ErrMiss
		},
		setFn: func(_ context.Context, roster []domain.MemberStatus) error {
			written = roster
			return nil
		},
	}

	svc := NewRosterService(repo, rc, testLogger())

	roster, err := svc.GetRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 row, got %d", len(roster))
	}
	if len(written) != 1 {
		t.Error("expected the snapshot to be written back to the cache")
	}
}

func TestGetRoster_CacheErrorDegrades(t *testing.T) {
	repo := &mockRosterRepo{
		getRosterFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			return sampleRoster(), nil
		},
	}
	rc := &mockRosterCache{
		getFn: func(_ context.Context) ([]domain.MemberStatus, error) {
			return nil, errors.New("redis down")
		},
		setFn: func(_ context.Context, _ []domain.MemberStatus) error {
			return errors.New("redis down")
		},
	}

	svc := NewRosterService(repo, rc, testLogger())

	roster, err := svc.GetRoster(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the read: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 row, got %d", len(roster))
	}
}

func TestGetHistory_Passthrough(t *testing.T) {
	repo := &mockRosterRepo{
		getPingHistoryFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error) {
			if query.MemberID != "member-1" {
				t.Fatalf("unexpected member id: %s", query.MemberID)
			}
			return []domain.LocationPing{
				{DeviceID: "device-abc", Location: domain.GeoPoint{Lat: 40.3430, Lon: -74.6514}, Timestamp: time.Unix(1715000000, 0)},
			}, nil
		},
	}

	svc := NewRosterService(repo, &mockRosterCache{}, testLogger())

	pings, err := svc.GetHistory(context.Background(), &domain.HistoryQuery{
		MemberID: "member-1",
		Start:    time.Unix(1715000000, 0),
		End:      time.Unix(1715009999, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pings) != 1 {
		t.Fatalf("expected 1 ping, got %d", len(pings))
	}
}
