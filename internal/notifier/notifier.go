// Package notifier consumes bid lifecycle events from RabbitMQ and
// records a notification per event for the affected user.
package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hirenest/hirenest-be/internal/notifier/domain"
	"github.com/hirenest/hirenest-be/internal/notifier/storage"
	"github.com/hirenest/hirenest-be/shared/postgresql"
	"github.com/hirenest/hirenest-be/shared/rabbitmq"
)

// Config holds notifier configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	EventTimeout  time.Duration
	PrefetchCount int
	QueueName     string
}

// Notifier is the background consumer service
type Notifier struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	storage       *storage.Storage
	concurrency   int
	eventTimeout  time.Duration
	prefetchCount int
	queueName     string
	consumerID    string
	eventsChan    chan *domain.EventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// New creates a new notifier instance
func New(cfg *Config) *Notifier {
	return &Notifier{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		storage:       storage.NewStorage(cfg.DBClient.DB(), cfg.Logger),
		concurrency:   cfg.Concurrency,
		eventTimeout:  cfg.EventTimeout,
		prefetchCount: cfg.PrefetchCount,
		queueName:     cfg.QueueName,
		consumerID:    "notifier-" + uuid.New().String()[:8],
		eventsChan:    make(chan *domain.EventMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start subscribes to the queue and processes events until the context
// is canceled.
func (n *Notifier) Start(ctx context.Context) error {
	n.logger.Info("Starting notifier",
		slog.String("consumer_id", n.consumerID),
		slog.Int("concurrency", n.concurrency),
		slog.Duration("event_timeout", n.eventTimeout),
	)

	deliveries, err := n.setupConsumer()
	if err != nil {
		return err
	}

	n.spawnWorkerPool(ctx)
	go n.startDispatcher(ctx, deliveries)

	<-ctx.Done()
	n.logger.Info("Notifier context canceled, stopping...")

	return nil
}

// Stop gracefully stops the notifier
func (n *Notifier) Stop() {
	n.logger.Info("Stopping notifier...")
	close(n.stopChan)
	n.wg.Wait()
	n.logger.Info("Notifier stopped")
}
