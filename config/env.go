package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort     string
	MQTTBroker   string
	MQTTClientID string
	RabbitMQURL  string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	SimInterval time.Duration
	SimStartLat float64
	SimStartLng float64
}

func Load() *Config {
	return &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		MQTTBroker:   getEnv("MQTT_BROKER", ""),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "visionguard-server"),
		RabbitMQURL:  getEnv("RABBITMQ_URL", ""),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),

		SimInterval: time.Duration(getEnvInt("SIM_INTERVAL_SECONDS", 4)) * time.Second,
		SimStartLat: getEnvFloat("SIM_START_LAT", 40.7128),
		SimStartLng: getEnvFloat("SIM_START_LNG", -74.0060),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
