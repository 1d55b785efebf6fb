package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

const topicPattern = "/visionguard/device/+/telemetry"

type trackerService interface {
	UpdatePosition(ctx context.Context, pos domain.Position) []domain.Alert
}

type deviceService interface {
	Update(ctx context.Context, health domain.DeviceHealth, pos domain.Position)
}

type telemetryMessage struct {
	DeviceID       string  `json:"device_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Battery        int     `json:"battery"`
	SignalStrength int     `json:"signal_strength"`
	Charging       bool    `json:"charging"`
	Timestamp      int64   `json:"timestamp"`
}

// TelemetrySubscriber ingests real device telemetry over MQTT. It feeds
// the same tracker as the simulator, so the two sources are
// interchangeable.
type TelemetrySubscriber struct {
	client     mqtt.Client
	trackerSvc trackerService
	deviceSvc  deviceService
}

func NewTelemetrySubscriber(client mqtt.Client, trackerSvc trackerService, deviceSvc deviceService) *TelemetrySubscriber {
	return &TelemetrySubscriber{
		client:     client,
		trackerSvc: trackerSvc,
		deviceSvc:  deviceSvc,
	}
}

func (s *TelemetrySubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *TelemetrySubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw telemetryMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid telemetry message: %v", err)
		return
	}

	if err := validateTelemetryMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	pos := domain.Position{Lat: raw.Latitude, Lng: raw.Longitude}

	status := domain.DeviceOnline
	if raw.Charging {
		status = domain.DeviceCharging
	}
	health := domain.DeviceHealth{
		Battery:        raw.Battery,
		SignalStrength: raw.SignalStrength,
		GPSStatus:      domain.GPSActive,
		LastSeen:       time.Unix(raw.Timestamp, 0),
		Status:         status,
	}

	ctx := context.Background()

	s.trackerSvc.UpdatePosition(ctx, pos)
	s.deviceSvc.Update(ctx, health, pos)
}

func validateTelemetryMessage(msg *telemetryMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Battery < 0 || msg.Battery > 100 {
		return fmt.Errorf("battery: must be between 0 and 100")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
