package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hirenest/hirenest-be/internal/events"
	"github.com/hirenest/hirenest-be/internal/notifier/domain"
)

// processEvent renders and records the notification for one event.
// Recording is idempotent on event_id, so redelivered events ACK
// cleanly without a second row.
func (n *Notifier) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	var event events.BidEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}

	notification, err := buildNotification(event)
	if err != nil {
		return err
	}

	eventCtx, cancel := context.WithTimeout(ctx, n.eventTimeout)
	defer cancel()

	inserted, err := n.storage.RecordNotification(eventCtx, notification)
	if err != nil {
		// Database errors are assumed transient
		return domain.NewRetryableError(fmt.Errorf("failed to record notification: %w", err))
	}

	if !inserted {
		n.logger.Info("Event already processed, skipping",
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	n.logger.Info("Notification recorded",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
		slog.String("recipient", notification.Recipient),
	)

	return nil
}

// buildNotification maps an event to the message its recipient sees.
// New bids notify the job owner; status changes notify the bidder.
func buildNotification(event events.BidEvent) (*domain.Notification, error) {
	notification := &domain.Notification{
		NotificationID: uuid.New().String(),
		EventID:        event.EventID,
		BidID:          event.BidID,
		JobID:          event.JobID,
	}

	switch event.Type {
	case events.TypeBidCreated:
		if event.OwnerEmail == "" {
			return nil, fmt.Errorf("%w: bid.created without owner email", domain.ErrInvalidEvent)
		}
		notification.Recipient = event.OwnerEmail
		notification.Subject = fmt.Sprintf("New bid on %q", event.JobTitle)
		notification.Body = fmt.Sprintf("%s placed a bid on your job %q.", event.BidderEmail, event.JobTitle)

	case events.TypeBidStatusChanged:
		if event.BidderEmail == "" {
			return nil, fmt.Errorf("%w: bid.status_changed without bidder email", domain.ErrInvalidEvent)
		}
		notification.Recipient = event.BidderEmail
		notification.Subject = fmt.Sprintf("Your bid on %q is now %s", event.JobTitle, event.Status)
		notification.Body = fmt.Sprintf("The status of your bid on %q changed to %s.", event.JobTitle, event.Status)

	default:
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidEvent, event.Type)
	}

	return notification, nil
}
