package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/config"
)

// Publisher sends notifications to the hall events queue.  Each call dials
// the broker, declares the durable queue and publishes one persistent
// message.  Errors are logged and returned so the caller can choose to
// ignore them.
type Publisher struct {
	url    string
	queue  string
	logger *zap.Logger
}

// NewPublisher builds a Publisher from the queue configuration.
func NewPublisher(cfg config.QueueConfig, logger *zap.Logger) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue, logger: logger}
}

// Publish sends n to the configured queue.
func (p *Publisher) Publish(ctx context.Context, n EventNotification) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         n.Kind,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq: publish failed", zap.Error(err), zap.String("kind", n.Kind))
		return err
	}
	return nil
}

// Discard is used when the queue is disabled.  It accepts and drops every
// notification.
type Discard struct{}

func (Discard) Publish(context.Context, EventNotification) error { return nil }
