package cache

import (
	"context"
	"errors"

	"github.com/jschady/geodorm/module/core/domain"
)

// ErrMiss is returned when the snapshot is absent or expired.
var ErrMiss = errors.New("cache miss")

// RosterCache holds a short-lived snapshot of the dashboard roster so
// polling clients do not hit postgres on every read.
type RosterCache interface {
	GetRoster(ctx context.Context) ([]domain.MemberStatus, error)
	SetRoster(ctx context.Context, roster []domain.MemberStatus) error
	Invalidate(ctx context.Context) error
}
