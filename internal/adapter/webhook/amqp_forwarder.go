package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	domain "github.com/greenbowl/storefront-api/internal/entity"
)

// AMQPForwarder mirrors lifecycle events onto a topic exchange, routing key
// = event type. Subscribed as a regular dispatcher listener, so delivery
// stays best-effort: a broker failure is logged by the dispatcher, nothing
// more.
type AMQPForwarder struct {
	ch       *amqp.Channel
	exchange string
}

// NewAMQPForwarder declares the exchange once at startup and enables
// publisher confirms.
func NewAMQPForwarder(ch *amqp.Channel, exchange string) (*AMQPForwarder, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}
	return &AMQPForwarder{ch: ch, exchange: exchange}, nil
}

// Forward is the Listener for the dispatcher.
func (f *AMQPForwarder) Forward(ctx context.Context, ev domain.WebhookEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Body:         body,
	}
	if err := f.ch.PublishWithContext(
		ctx,
		f.exchange,
		string(ev.EventType), // routing key
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
