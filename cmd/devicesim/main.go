package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type telemetryMessage struct {
	DeviceID       string  `json:"device_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Battery        int     `json:"battery"`
	SignalStrength int     `json:"signal_strength"`
	Charging       bool    `json:"charging"`
	Timestamp      int64   `json:"timestamp"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	deviceID := "vg-demo-device"
	if v := os.Getenv("DEVICE_ID"); v != "" {
		deviceID = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("visionguard-devicesim")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)

	// start at the "Home" safe zone and drift from there
	lat, lng := 40.7128, -74.0060
	battery := 100
	charging := false

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		lat += (rand.Float64() - 0.5) * 0.001
		lng += (rand.Float64() - 0.5) * 0.001

		if charging {
			battery += 5
			if battery >= 100 {
				battery = 100
				charging = false
			}
		} else if rand.Float64() < 0.2 {
			battery--
			if battery <= 5 {
				charging = true
			}
		}

		msg := telemetryMessage{
			DeviceID:       deviceID,
			Latitude:       lat,
			Longitude:      lng,
			Battery:        battery,
			SignalStrength: 3 + rand.Intn(3),
			Charging:       charging,
			Timestamp:      time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/visionguard/device/%s/telemetry", deviceID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
