package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/rabbit"
	"github.com/rabbitmq/amqp091-go"
)

// Live location updates go through a fanout exchange: every watcher
// process gets every update, routing keys carry no meaning.
const locationExchange = "walk_location_fanout"

type LocationProducer struct {
	client *rabbit.RabbitMQ
}

func NewLocationProducer(client *rabbit.RabbitMQ) (*LocationProducer, error) {
	if err := client.Channel.ExchangeDeclare(
		locationExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", locationExchange, err)
	}

	return &LocationProducer{
		client: client,
	}, nil
}

// PublishLocationUpdate pushes one live location update to every watcher.
func (r *LocationProducer) PublishLocationUpdate(ctx context.Context, msg models.WalkLocationUpdate) error {
	const op = "LocationProducer.PublishLocationUpdate"

	if err := r.client.EnsureConnection(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_location_update")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	if err := r.client.Channel.PublishWithContext(
		ctx,
		locationExchange,
		"", // routing key, ignored by fanout
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	); err != nil {
		ctx = wrap.WithAction(ctx, "publish_message")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}
