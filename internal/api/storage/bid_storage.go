package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hirenest/hirenest-be/internal/api/domain"
	"github.com/hirenest/hirenest-be/internal/api/model"
)

const bidColumns = `
	bid_id, job_id, email, price, comment, deadline,
	status, job_title, category, buyer_email,
	created_at, updated_at
`

// pq error code for unique_violation
const uniqueViolation = "23505"

// CreateBid inserts a new bid. The unique index on (email, job_id)
// backs up the handler's pre-insert check, so a race between identical
// submissions still yields exactly one bid.
func (s *Storage) CreateBid(ctx context.Context, bid *model.Bid) error {
	query := `
		INSERT INTO bids (` + bidColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		bid.BidID,
		bid.JobID,
		bid.Email,
		bid.Price,
		bid.Comment,
		bid.Deadline,
		bid.Status,
		bid.JobTitle,
		bid.Category,
		bid.BuyerEmail,
		bid.CreatedAt,
		bid.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateBid
		}
		return fmt.Errorf("failed to create bid: %w", err)
	}

	return nil
}

// HasBid reports whether the user already has a bid on the job.
func (s *Storage) HasBid(ctx context.Context, email, jobID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM bids WHERE email = $1 AND job_id = $2`

	if err := s.db.GetContext(ctx, &count, query, email, jobID); err != nil {
		return false, fmt.Errorf("failed to check existing bid: %w", err)
	}

	return count > 0, nil
}

func (s *Storage) GetBidByID(ctx context.Context, bidID string) (*model.Bid, error) {
	var bid model.Bid
	query := `SELECT ` + bidColumns + ` FROM bids WHERE bid_id = $1`

	err := s.db.GetContext(ctx, &bid, query, bidID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}

	return &bid, nil
}

// ListBidsByBidder returns bids placed by the given user.
func (s *Storage) ListBidsByBidder(ctx context.Context, email string) ([]model.Bid, error) {
	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE email = $1
		ORDER BY created_at DESC, bid_id DESC
	`

	bids := []model.Bid{}
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids by bidder: %w", err)
	}

	return bids, nil
}

// ListBidsByOwner returns bids placed against jobs owned by the given
// user, matched on the denormalized buyer email.
func (s *Storage) ListBidsByOwner(ctx context.Context, email string) ([]model.Bid, error) {
	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE buyer_email = $1
		ORDER BY created_at DESC, bid_id DESC
	`

	bids := []model.Bid{}
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids by owner: %w", err)
	}

	return bids, nil
}

// UpdateBidStatus transitions a bid from one status to another using an
// optimistic guard on the current status. Returns ErrIllegalTransition
// when the bid changed under us, ErrBidNotFound when it is gone.
func (s *Storage) UpdateBidStatus(ctx context.Context, bidID, from, to string) error {
	query := `
		UPDATE bids
		SET status = $1,
		    updated_at = NOW()
		WHERE bid_id = $2
		  AND status = $3
	`

	result, err := s.db.ExecContext(ctx, query, to, bidID, from)
	if err != nil {
		return fmt.Errorf("failed to update bid status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		// Either the bid no longer exists or its status moved on
		if _, err := s.GetBidByID(ctx, bidID); err != nil {
			return err
		}
		return domain.ErrIllegalTransition
	}

	return nil
}
