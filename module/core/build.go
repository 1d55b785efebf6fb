package core

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/feed"
	handler "github.com/SAMSON5319x/visionguard/module/core/internal/handler/http"
	"github.com/SAMSON5319x/visionguard/module/core/internal/handler/subscriber"
	"github.com/SAMSON5319x/visionguard/module/core/internal/handler/ws"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/insight"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/insight/gemini"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/publisher"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/publisher/rabbitmq"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store/memory"
	"github.com/SAMSON5319x/visionguard/module/core/service"
)

type Module struct {
	AlertSvc   *service.AlertService
	TrackerSvc *service.TrackerService
	DeviceSvc  *service.DeviceService
	InsightSvc *service.InsightService

	handler    *handler.DashboardHandler
	hub        *ws.Hub
	subscriber *subscriber.TelemetrySubscriber
}

// InsightConfig points the summary client at a generative-language
// endpoint.
type InsightConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Build wires the monitoring core. mqttClient and amqpConn are
// optional: without MQTT the simulator is the only position source, and
// without RabbitMQ alerts stay local to the dashboard.
func Build(mqttClient mqtt.Client, amqpConn *amqp.Connection, insightCfg InsightConfig, start domain.Position, zones []domain.SafeZone) (*Module, error) {
	alertStore := memory.NewAlertStore()

	var insightClient insight.Client = gemini.NewClient(insightCfg.BaseURL, insightCfg.APIKey, insightCfg.Model)

	var alertPub publisher.AlertPublisher = publisher.NoopPublisher{}
	if amqpConn != nil {
		pub, err := rabbitmq.NewAlertPublisher(amqpConn)
		if err != nil {
			return nil, err
		}
		alertPub = pub
	}

	geofenceSvc := service.NewGeofenceService(alertStore, alertPub)
	alertSvc := service.NewAlertService(alertStore, alertPub)
	trackerSvc := service.NewTrackerService(start, zones, geofenceSvc)
	deviceSvc := service.NewDeviceService(alertStore, alertPub)
	insightSvc := service.NewInsightService(insightClient, alertStore, trackerSvc)

	hub := ws.NewHub()
	trackerSvc.SetOnUpdate(func() {
		hub.Broadcast(ws.Update{
			Position:      trackerSvc.Position(),
			PendingAlerts: len(alertStore.Pending()),
			Device:        deviceSvc.Health(),
		})
	})

	h := handler.NewDashboardHandler(alertSvc, trackerSvc, deviceSvc, insightSvc)

	var sub *subscriber.TelemetrySubscriber
	if mqttClient != nil {
		sub = subscriber.NewTelemetrySubscriber(mqttClient, trackerSvc, deviceSvc)
	}

	return &Module{
		AlertSvc:   alertSvc,
		TrackerSvc: trackerSvc,
		DeviceSvc:  deviceSvc,
		InsightSvc: insightSvc,
		handler:    h,
		hub:        hub,
		subscriber: sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
	m.hub.Register(r)
}

func (m *Module) StartSubscribers() error {
	if m.subscriber == nil {
		return nil
	}
	return m.subscriber.Start()
}

// RunSimulator drives the tracker from a random-walk position source
// until ctx is cancelled.
func (m *Module) RunSimulator(ctx context.Context, start domain.Position, interval time.Duration, seed int64) {
	feed.Run(ctx, feed.NewRandomWalk(start, seed), m.TrackerSvc, interval)
}
