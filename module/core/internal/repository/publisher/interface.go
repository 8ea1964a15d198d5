package publisher

import (
	"context"

	"github.com/jschady/geodorm/module/core/domain"
)

type StatusPublisher interface {
	PublishChange(ctx context.Context, change *domain.StatusChange) error
}
