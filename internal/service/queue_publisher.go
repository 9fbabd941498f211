// Package queue_publisher publishes audit events to RabbitMQ. Errors
// are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/items-api/internal/queue"
)

const auditQueue = "audit.events"

// Publisher holds the broker URL fixed at construction. An empty URL
// disables publishing; Publish becomes a no-op so the audit side
// channel is optional in dev.
type Publisher struct {
	url string
	log *slog.Logger
}

func NewPublisher(url string, log *slog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// Publish sends an AuditEvent to the audit queue. The function never
// panics; any error is logged and returned for the caller to discard.
// Messages are marked persistent.
func (p *Publisher) Publish(ctx context.Context, event q.AuditEvent) error {
	if p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("rabbitmq dial failed", "error", err.Error())
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("rabbitmq channel open failed", "error", err.Error())
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		auditQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		p.log.Error("rabbitmq queue declare failed", "error", err.Error())
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("rabbitmq marshal event failed", "error", err.Error())
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",         // default exchange
		auditQueue, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		pub,
	); err != nil {
		p.log.Error("rabbitmq publish failed", "error", err.Error())
		return err
	}
	return nil
}
