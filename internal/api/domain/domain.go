package domain

import (
	"errors"
)

// Bid status values. A bid starts as pending; the job owner either
// accepts or rejects it, and an accepted bid is marked completed once
// the work is done. Rejected and completed are terminal.
const (
	BidStatusPending   = "pending"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
	BidStatusCompleted = "completed"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrBidNotFound = errors.New("bid not found")

	// ErrDuplicateBid is returned when a (email, job_id) pair already
	// has a bid, whether caught by the pre-insert check or the unique
	// index.
	ErrDuplicateBid = errors.New("already placed a bid on this job")

	// ErrInvalidStatus is returned for a status value outside the bid
	// status domain.
	ErrInvalidStatus = errors.New("invalid bid status")

	// ErrIllegalTransition is returned when the requested status change
	// is not allowed from the bid's current status.
	ErrIllegalTransition = errors.New("illegal bid status transition")

	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
)

// ValidBidStatus reports whether s is within the bid status domain.
func ValidBidStatus(s string) bool {
	switch s {
	case BidStatusPending, BidStatusAccepted, BidStatusRejected, BidStatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a bid may move from one status to
// another. Terminal statuses admit no further transitions.
func CanTransition(from, to string) bool {
	switch from {
	case BidStatusPending:
		return to == BidStatusAccepted || to == BidStatusRejected
	case BidStatusAccepted:
		return to == BidStatusCompleted
	default:
		return false
	}
}
