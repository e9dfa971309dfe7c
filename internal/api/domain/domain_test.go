package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{BidStatusPending, true},
		{BidStatusAccepted, true},
		{BidStatusRejected, true},
		{BidStatusCompleted, true},
		{"in progress", false},
		{"PENDING", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidBidStatus(tt.status))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to accepted", BidStatusPending, BidStatusAccepted, true},
		{"pending to rejected", BidStatusPending, BidStatusRejected, true},
		{"pending to completed", BidStatusPending, BidStatusCompleted, false},
		{"accepted to completed", BidStatusAccepted, BidStatusCompleted, true},
		{"accepted to rejected", BidStatusAccepted, BidStatusRejected, false},
		{"rejected is terminal", BidStatusRejected, BidStatusPending, false},
		{"completed is terminal", BidStatusCompleted, BidStatusAccepted, false},
		{"pending to pending", BidStatusPending, BidStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
