package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/rabbit"
)

type LocationConsumer struct {
	client *rabbit.RabbitMQ
}

func NewLocationConsumer(client *rabbit.RabbitMQ) *LocationConsumer {
	return &LocationConsumer{
		client: client,
	}
}

// ConsumeLocationUpdates binds an exclusive queue to the fanout exchange
// and feeds each update to handler. The queue dies with the process, so a
// restarted watcher starts from live traffic.
func (r *LocationConsumer) ConsumeLocationUpdates(ctx context.Context, handler func(context.Context, models.WalkLocationUpdate)) error {
	const op = "LocationConsumer.ConsumeLocationUpdates"

	q, err := r.client.Channel.QueueDeclare(
		"",    // broker-named
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ctx = wrap.WithAction(ctx, "declare_queue")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to declare queue: %w", op, err))
	}

	if err := r.client.Channel.QueueBind(
		q.Name,
		"", // binding key, ignored by fanout
		locationExchange,
		false,
		nil,
	); err != nil {
		ctx = wrap.WithAction(ctx, "bind_queue")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to bind queue: %w", op, err))
	}

	msgs, err := r.client.Channel.Consume(
		q.Name,
		"",
		true, // auto-ack
		true, // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		ctx = wrap.WithAction(ctx, "consume_data")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to register consumer: %w", op, err))
	}

	go func() {
		for d := range msgs {
			var update models.WalkLocationUpdate
			if err := json.Unmarshal(d.Body, &update); err != nil {
				continue
			}

			handler(ctx, update)
		}
	}()

	return nil
}
