// Package events defines the bid lifecycle events exchanged between the
// API service and the notifier over RabbitMQ.
package events

import "time"

const (
	TypeBidCreated       = "bid.created"
	TypeBidStatusChanged = "bid.status_changed"
)

// BidEvent is the JSON message published for every bid mutation.
// EventID makes consumption idempotent: the notifier deduplicates on it.
type BidEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	BidID       string    `json:"bid_id"`
	JobID       string    `json:"job_id"`
	BidderEmail string    `json:"bidder_email"`
	OwnerEmail  string    `json:"owner_email"`
	JobTitle    string    `json:"job_title"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// KnownType reports whether t is an event type this system produces.
func KnownType(t string) bool {
	switch t {
	case TypeBidCreated, TypeBidStatusChanged:
		return true
	default:
		return false
	}
}
