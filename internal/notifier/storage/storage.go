package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/hirenest/hirenest-be/internal/notifier/domain"
)

// Storage handles all database operations for the notifier
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// RecordNotification inserts a notification unless one already exists
// for the same event. The unique index on event_id makes redelivered
// events a no-op; the bool reports whether a row was written.
func (s *Storage) RecordNotification(ctx context.Context, n *domain.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (notification_id, event_id, recipient, subject, body, bid_id, job_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		n.NotificationID,
		n.EventID,
		n.Recipient,
		n.Subject,
		n.Body,
		n.BidID,
		n.JobID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record notification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Debug("Notification already recorded for event",
			slog.String("event_id", n.EventID),
		)
		return false, nil
	}

	return true, nil
}
