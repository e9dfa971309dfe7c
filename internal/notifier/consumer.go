package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hirenest/hirenest-be/internal/events"
	"github.com/hirenest/hirenest-be/internal/notifier/domain"
)

// setupConsumer configures QoS and returns the delivery channel
func (n *Notifier) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := n.rabbitClient.Channel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Prefetch bounds the unacknowledged backlog per consumer
	if err := channel.Qos(n.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := n.rabbitClient.Consume(n.consumerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	n.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_id", n.consumerID),
		slog.String("queue", n.queueName),
		slog.Int("prefetch_count", n.prefetchCount),
	)

	return deliveries, nil
}

// startDispatcher reads deliveries and dispatches well-formed events to
// the worker pool. Events that can never be processed are rejected
// without requeue so a redelivery loop cannot form.
func (n *Notifier) startDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				n.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var event events.BidEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				n.logger.Error("Failed to parse event JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				n.reject(delivery)
				continue
			}

			if !events.KnownType(event.Type) {
				n.logger.Error("Unknown event type",
					slog.String("type", event.Type),
					slog.String("event_id", event.EventID),
				)
				n.reject(delivery)
				continue
			}

			if _, err := uuid.Parse(event.EventID); err != nil {
				n.logger.Error("Invalid event_id - not a UUID",
					slog.String("event_id", event.EventID),
				)
				n.reject(delivery)
				continue
			}

			msg := &domain.EventMessage{
				EventID:     event.EventID,
				DeliveryTag: delivery.DeliveryTag,
				Body:        delivery.Body,
			}

			select {
			case n.eventsChan <- msg:
				n.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				n.logger.Info("Dispatcher stopped while dispatching event")
				// Requeue so another consumer can pick it up
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					n.logger.Error("Failed to NACK event on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}

func (n *Notifier) reject(delivery amqp.Delivery) {
	if err := delivery.Nack(false, false); err != nil {
		n.logger.Error("Failed to NACK unusable event",
			slog.String("error", err.Error()),
		)
	}
}
