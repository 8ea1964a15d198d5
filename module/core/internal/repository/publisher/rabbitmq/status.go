package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/publisher"
)

var _ publisher.StatusPublisher = (*StatusPublisher)(nil)

const (
	exchangeName = "home.presence"
	queueName    = "presence_changes"
)

type StatusPublisher struct {
	ch *amqp.Channel
}

func NewStatusPublisher(conn *amqp.Connection) (*StatusPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &StatusPublisher{ch: ch}, nil
}

type changeMessage struct {
	MemberID       string  `json:"member_id"`
	GeofenceID     string  `json:"geofence_id"`
	GeofenceName   string  `json:"geofence_name"`
	OldStatus      string  `json:"old_status"`
	NewStatus      string  `json:"new_status"`
	DistanceMeters float64 `json:"distance_meters"`
	ChangedAt      string  `json:"changed_at"`
}

func (p *StatusPublisher) PublishChange(ctx context.Context, change *domain.StatusChange) error {
	msg := changeMessage{
		MemberID:       change.MemberID,
		GeofenceID:     change.GeofenceID,
		GeofenceName:   change.GeofenceName,
		OldStatus:      string(change.OldStatus),
		NewStatus:      string(change.NewStatus),
		DistanceMeters: change.DistanceMeters,
		ChangedAt:      change.ChangedAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
