package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirenest/hirenest-be/internal/notifier/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (n *Notifier) spawnWorkerPool(ctx context.Context) {
	for i := 0; i < n.concurrency; i++ {
		n.wg.Add(1)
		go n.workerLoop(ctx, i)
	}

	n.logger.Info("Worker pool spawned",
		slog.Int("worker_count", n.concurrency),
	)
}

// workerLoop is the main processing loop for each worker goroutine
func (n *Notifier) workerLoop(ctx context.Context, workerNum int) {
	defer n.wg.Done()

	workerName := fmt.Sprintf("%s-%d", n.consumerID, workerNum)
	n.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-n.stopChan:
			n.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			n.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-n.eventsChan:
			if !ok {
				return
			}

			err := n.processEvent(ctx, msg)

			channel := n.rabbitClient.Channel()
			if channel == nil {
				n.logger.Error("Failed to get RabbitMQ channel for ACK/NACK",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.EventID),
				)
				continue
			}

			if err != nil {
				n.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.EventID),
					slog.String("error", err.Error()),
				)

				requeue := n.shouldRequeue(err)
				if nackErr := channel.Nack(msg.DeliveryTag, false, requeue); nackErr != nil {
					n.logger.Error("Failed to NACK event",
						slog.String("worker_name", workerName),
						slog.String("event_id", msg.EventID),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := channel.Ack(msg.DeliveryTag, false); ackErr != nil {
				n.logger.Error("Failed to ACK event",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.EventID),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// shouldRequeue determines whether a failed event goes back on the
// queue. Only transient failures are retried; an event that is invalid
// now will be invalid forever.
func (n *Notifier) shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidEvent) {
		return false
	}

	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
