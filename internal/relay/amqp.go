package relay

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpTransport struct {
	channel *amqp.Channel
	queue   string
}

// NewAMQPTransport publishes each notification as a persistent JSON message
// on a declared queue.
func NewAMQPTransport(ch *amqp.Channel, queue string) (Transport, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare notification queue: %w", err)
	}
	return &amqpTransport{channel: ch, queue: queue}, nil
}

func (t *amqpTransport) Publish(ctx context.Context, entry LogEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return t.channel.PublishWithContext(ctx, "", t.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}
