package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/metrics"
)

const topicPattern = "/home/device/+/location"

type presenceService interface {
	HandlePing(ctx context.Context, ping *domain.LocationPing) error
}

// pingMessage is the wire format devices publish: timestamp is RFC 3339,
// accuracy is optional.
type pingMessage struct {
	DeviceID  string   `json:"device_id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timestamp string   `json:"timestamp"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

type PingSubscriber struct {
	client      mqtt.Client
	presenceSvc presenceService
	log         *logrus.Logger
}

func NewPingSubscriber(client mqtt.Client, presenceSvc presenceService, log *logrus.Logger) *PingSubscriber {
	return &PingSubscriber{
		client:      client,
		presenceSvc: presenceSvc,
		log:         log,
	}
}

func (s *PingSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PingSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	metrics.PingsReceivedTotal.Inc()

	var raw pingMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		metrics.PingsDroppedTotal.Inc()
		s.log.WithError(err).Warn("invalid ping payload")
		return
	}

	ping, err := toPing(&raw)
	if err != nil {
		metrics.PingsDroppedTotal.Inc()
		s.log.WithField("device_id", raw.DeviceID).WithError(err).Warn("ping validation failed")
		return
	}

	if err := s.presenceSvc.HandlePing(context.Background(), ping); err != nil {
		s.log.WithField("device_id", ping.DeviceID).WithError(err).Error("handle ping failed")
	}
}

func toPing(msg *pingMessage) (*domain.LocationPing, error) {
	if msg.DeviceID == "" {
		return nil, fmt.Errorf("device_id: required")
	}
	ts, err := time.Parse(time.RFC3339, msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return nil, fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return nil, fmt.Errorf("longitude: must be between -180 and 180")
	}

	ping := &domain.LocationPing{
		DeviceID:  msg.DeviceID,
		Location:  domain.GeoPoint{Lat: msg.Latitude, Lon: msg.Longitude},
		Timestamp: ts,
	}
	if msg.Accuracy != nil {
		ping.AccuracyMeters = *msg.Accuracy
	}
	return ping, nil
}
