package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

const (
	exchangeName = "visionguard.alerts"
	queueName    = "caregiver_alerts"
)

type AlertPublisher struct {
	ch *amqp.Channel
}

func NewAlertPublisher(conn *amqp.Connection) (*AlertPublisher, error) {
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

	return &AlertPublisher{ch: ch}, nil
}

type alertMessage struct {
	ID        string               `json:"id"`
	Kind      domain.AlertKind     `json:"kind"`
	Severity  domain.AlertSeverity `json:"severity"`
	Message   string               `json:"message"`
	Location  alertLocation        `json:"location"`
	ZoneID    string               `json:"zone_id,omitempty"`
	Timestamp int64                `json:"timestamp"`
}

type alertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *AlertPublisher) PublishAlert(ctx context.Context, alert *domain.Alert) error {
	msg := alertMessage{
		ID:       alert.ID,
		Kind:     alert.Kind,
		Severity: alert.Severity,
		Message:  alert.Description,
		Location: alertLocation{
			Latitude:  alert.Lat,
			Longitude: alert.Lng,
		},
		ZoneID:    alert.ZoneID,
		Timestamp: alert.CreatedAt.Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
