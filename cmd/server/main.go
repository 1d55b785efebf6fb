package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SAMSON5319x/visionguard/config"
	"github.com/SAMSON5319x/visionguard/module/core"
	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

func main() {
	cfg := config.Load()

	var mqttClient mqtt.Client
	if cfg.MQTTBroker != "" {
		c, err := config.NewMQTT(cfg)
		if err != nil {
			log.Fatalf("mqtt: %v", err)
		}
		mqttClient = c
		defer mqttClient.Disconnect(250)
	}

	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		c, err := config.NewRabbitMQ(cfg)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		amqpConn = c
		defer func() { _ = amqpConn.Close() }()
	}

	insightCfg := core.InsightConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
	}

	start := domain.Position{Lat: cfg.SimStartLat, Lng: cfg.SimStartLng}
	zones := []domain.SafeZone{
		{ID: "1", Name: "Home", Address: "123 Peace Lane", Lat: 40.7128, Lng: -74.0060, Type: domain.ZoneHome, RadiusMeters: 200, Enabled: true},
		{ID: "2", Name: "Central Hospital", Address: "456 Med Blvd", Lat: 40.7228, Lng: -74.0160, Type: domain.ZoneHospital, RadiusMeters: 500, Enabled: false},
		{ID: "3", Name: "Office", Address: "789 Tech Park", Lat: 40.7028, Lng: -73.9960, Type: domain.ZoneWork, RadiusMeters: 300, Enabled: false},
	}

	coreModule, err := core.Build(mqttClient, amqpConn, insightCfg, start, zones)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()
	coreModule.RegisterRoutes(r.Group("/api/v1"))
	config.NewHealthChecker(amqpConn, mqttClient).Register(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the simulator stands in for a live device when MQTT is not wired;
	// cancelling ctx stops its ticker before the server exits
	if mqttClient == nil {
		go coreModule.RunSimulator(ctx, start, cfg.SimInterval, time.Now().UnixNano())
	}

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: r}
	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
