package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jschady/geodorm/module/core/domain"
)

type mockPresenceSvc struct {
	handlePingFn func(ctx context.Context, ping *domain.LocationPing) error
	calls        []*domain.LocationPing
}

func (m *mockPresenceSvc) HandlePing(ctx context.Context, ping *domain.LocationPing) error {
	m.calls = append(m.calls, ping)
	if m.handlePingFn != nil {
		return m.handlePingFn(ctx, ping)
	}
	return nil
}

type fakeMQTTMessage struct {
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 0 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return "/home/device/device-abc/location" }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHandleMessage_Success(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	accuracy := 12.5
	msg := pingMessage{
		DeviceID:  "device-abc",
		Latitude:  40.3430,
		Longitude: -74.6514,
		Timestamp: "2024-05-06T13:50:56Z",
		Accuracy:  &accuracy,
	}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 1 {
		t.Fatalf("expected 1 handled ping, got %d", len(svc.calls))
	}
	ping := svc.calls[0]
	if ping.DeviceID != "device-abc" {
		t.Errorf("expected device-abc, got %s", ping.DeviceID)
	}
	if ping.Location.Lat != 40.3430 {
		t.Errorf("expected 40.3430, got %f", ping.Location.Lat)
	}
	if ping.AccuracyMeters != 12.5 {
		t.Errorf("expected accuracy 12.5, got %f", ping.AccuracyMeters)
	}
	expected := time.Date(2024, 5, 6, 13, 50, 56, 0, time.UTC)
	if !ping.Timestamp.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, ping.Timestamp)
	}
}

func TestHandleMessage_MissingAccuracy(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	payload := []byte(`{"device_id":"device-abc","latitude":1,"longitude":2,"timestamp":"2024-05-06T13:50:56Z"}`)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 1 {
		t.Fatalf("expected 1 handled ping, got %d", len(svc.calls))
	}
	if svc.calls[0].AccuracyMeters != 0 {
		t.Errorf("expected 0 accuracy, got %f", svc.calls[0].AccuracyMeters)
	}
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	sub.handleMessage(nil, &fakeMQTTMessage{payload: []byte(`{not json`)})

	if len(svc.calls) != 0 {
		t.Fatalf("expected no handled pings, got %d", len(svc.calls))
	}
}

func TestHandleMessage_BadTimestamp(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	payload := []byte(`{"device_id":"device-abc","latitude":1,"longitude":2,"timestamp":"1715003456"}`)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 0 {
		t.Fatalf("expected no handled pings, got %d", len(svc.calls))
	}
}

func TestHandleMessage_OutOfRangeLatitude(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	payload := []byte(`{"device_id":"device-abc","latitude":91,"longitude":2,"timestamp":"2024-05-06T13:50:56Z"}`)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 0 {
		t.Fatalf("expected no handled pings, got %d", len(svc.calls))
	}
}

func TestHandleMessage_MissingDeviceID(t *testing.T) {
	svc := &mockPresenceSvc{}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	payload := []byte(`{"latitude":1,"longitude":2,"timestamp":"2024-05-06T13:50:56Z"}`)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 0 {
		t.Fatalf("expected no handled pings, got %d", len(svc.calls))
	}
}

func TestHandleMessage_ServiceErrorDoesNotPanic(t *testing.T) {
	svc := &mockPresenceSvc{
		handlePingFn: func(_ context.Context, _ *domain.LocationPing) error {
			return errors.New("db down")
		},
	}
	sub := &PingSubscriber{presenceSvc: svc, log: testLogger()}

	payload := []byte(`{"device_id":"device-abc","latitude":1,"longitude":2,"timestamp":"2024-05-06T13:50:56Z"}`)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if len(svc.calls) != 1 {
		t.Fatalf("expected the ping to reach the service, got %d calls", len(svc.calls))
	}
}
