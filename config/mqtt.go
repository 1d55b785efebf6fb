package config

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// brokerConnectTimeout bounds the initial connection attempt to either
// broker so a missing broker fails startup quickly instead of hanging.
const brokerConnectTimeout = 10 * time.Second

func NewMQTT(cfg *Config) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID).
		SetConnectTimeout(brokerConnectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(brokerConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out after %s", cfg.MQTTBroker, brokerConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.MQTTBroker, err)
	}
	return client, nil
}
