package domain

import "time"

// Notification is a rendered message destined for a marketplace user.
// Exactly one notification exists per consumed event.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	EventID        string    `db:"event_id"`
	Recipient      string    `db:"recipient"`
	Subject        string    `db:"subject"`
	Body           string    `db:"body"`
	BidID          string    `db:"bid_id"`
	JobID          string    `db:"job_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// EventMessage carries a decoded bid event together with the broker
// delivery tag needed to ACK/NACK it.
type EventMessage struct {
	EventID     string
	DeliveryTag uint64
	Body        []byte
}
