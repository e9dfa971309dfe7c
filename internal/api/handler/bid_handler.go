package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirenest/hirenest-be/internal/api/domain"
	"github.com/hirenest/hirenest-be/internal/api/dto"
	"github.com/hirenest/hirenest-be/internal/api/model"
	"github.com/hirenest/hirenest-be/internal/events"
)

func bidToDTO(bid *model.Bid) dto.BidDTO {
	return dto.BidDTO{
		BidID:      bid.BidID,
		JobID:      bid.JobID,
		Email:      bid.Email,
		Price:      bid.Price,
		Comment:    bid.Comment,
		Deadline:   bid.Deadline.Format(time.RFC3339),
		Status:     bid.Status,
		JobTitle:   bid.JobTitle,
		Category:   bid.Category,
		BuyerEmail: bid.BuyerEmail,
		CreatedAt:  bid.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  bid.UpdatedAt.Format(time.RFC3339),
	}
}

func bidsToDTOs(bids []model.Bid) []dto.BidDTO {
	out := make([]dto.BidDTO, len(bids))
	for i := range bids {
		out[i] = bidToDTO(&bids[i])
	}
	return out
}

// publishEvent sends a bid event to the broker. Best effort: a broker
// outage must not fail the request that already committed to the store.
func (h *BidHandler) publishEvent(ctx context.Context, event events.BidEvent) {
	if h.events == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal bid event", slog.String("error", err.Error()))
		return
	}

	if err := h.events.PublishWithRetry(ctx, body, "application/json"); err != nil {
		h.logger.Error("Failed to publish bid event",
			slog.String("event_id", event.EventID),
			slog.String("type", event.Type),
			slog.String("error", err.Error()),
		)
	}
}

// CreateBid handles POST /bid
// Rejects a second bid from the same email on the same job with 409.
func (h *BidHandler) CreateBid(c *gin.Context) {
	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	ctx := c.Request.Context()

	exists, err := h.bids.HasBid(ctx, req.Email, req.JobID)
	if err != nil {
		h.logger.Error("Failed to check existing bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create bid",
		})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{
			"error": "You have already placed a bid on this job",
		})
		return
	}

	job, err := h.jobs.GetJobByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to load job for bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create bid",
		})
		return
	}

	var deadline time.Time
	if req.Deadline != "" {
		var ok bool
		if deadline, ok = parseDeadline(req.Deadline); !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "deadline must be an RFC3339 timestamp or YYYY-MM-DD date",
			})
			return
		}
	} else {
		deadline = job.Deadline
	}

	now := time.Now()
	bid := model.Bid{
		BidID:      uuid.New().String(),
		JobID:      job.JobID,
		Email:      req.Email,
		Price:      req.Price,
		Comment:    req.Comment,
		Deadline:   deadline,
		Status:     domain.BidStatusPending,
		JobTitle:   job.Title,
		Category:   job.Category,
		BuyerEmail: job.BuyerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.bids.CreateBid(ctx, &bid); err != nil {
		if errors.Is(err, domain.ErrDuplicateBid) {
			// Lost the race to a concurrent identical submission; the
			// unique index kept exactly one bid
			c.JSON(http.StatusConflict, gin.H{
				"error": "You have already placed a bid on this job",
			})
			return
		}
		h.logger.Error("Failed to create bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create bid",
		})
		return
	}

	h.logger.Info("Bid created",
		slog.String("bid_id", bid.BidID),
		slog.String("job_id", bid.JobID),
		slog.String("email", bid.Email),
	)

	h.publishEvent(ctx, events.BidEvent{
		EventID:     uuid.New().String(),
		Type:        events.TypeBidCreated,
		BidID:       bid.BidID,
		JobID:       bid.JobID,
		BidderEmail: bid.Email,
		OwnerEmail:  bid.BuyerEmail,
		JobTitle:    bid.JobTitle,
		Status:      bid.Status,
		OccurredAt:  now,
	})

	c.JSON(http.StatusCreated, bidToDTO(&bid))
}

// UpdateBidStatus handles PATCH /bid/:id
// Status changes go through the bid state machine: pending may become
// accepted or rejected, accepted may become completed, and terminal
// statuses never change.
func (h *BidHandler) UpdateBidStatus(c *gin.Context) {
	bidID := c.Param("id")

	if _, err := uuid.Parse(bidID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	var req dto.UpdateBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if !domain.ValidBidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown bid status",
		})
		return
	}

	ctx := c.Request.Context()

	bid, err := h.bids.GetBidByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, domain.ErrBidNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Bid not found",
			})
			return
		}
		h.logger.Error("Failed to get bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update bid status",
		})
		return
	}

	if !domain.CanTransition(bid.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cannot change bid status from " + bid.Status + " to " + req.Status,
		})
		return
	}

	if err := h.bids.UpdateBidStatus(ctx, bidID, bid.Status, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrBidNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Bid not found",
			})
		case errors.Is(err, domain.ErrIllegalTransition):
			// Status moved under us between read and write
			c.JSON(http.StatusConflict, gin.H{
				"error": "Bid status changed concurrently",
			})
		default:
			h.logger.Error("Failed to update bid status",
				slog.String("bid_id", bidID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update bid status",
			})
		}
		return
	}

	h.logger.Info("Bid status updated",
		slog.String("bid_id", bidID),
		slog.String("from", bid.Status),
		slog.String("to", req.Status),
	)

	h.publishEvent(ctx, events.BidEvent{
		EventID:     uuid.New().String(),
		Type:        events.TypeBidStatusChanged,
		BidID:       bid.BidID,
		JobID:       bid.JobID,
		BidderEmail: bid.Email,
		OwnerEmail:  bid.BuyerEmail,
		JobTitle:    bid.JobTitle,
		Status:      req.Status,
		OccurredAt:  time.Now(),
	})

	bid.Status = req.Status
	c.JSON(http.StatusOK, bidToDTO(bid))
}

// ListBidsByBidder handles GET /my-bids/:email (guarded)
func (h *BidHandler) ListBidsByBidder(c *gin.Context) {
	email := c.Param("email")

	if c.GetString(IdentityKey) != email {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "forbidden access",
		})
		return
	}

	bids, err := h.bids.ListBidsByBidder(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list bids by bidder",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	c.JSON(http.StatusOK, bidsToDTOs(bids))
}

// ListBidRequests handles GET /bid-request/:email (guarded)
// Bids placed against jobs the authenticated user owns.
func (h *BidHandler) ListBidRequests(c *gin.Context) {
	email := c.Param("email")

	if c.GetString(IdentityKey) != email {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "forbidden access",
		})
		return
	}

	bids, err := h.bids.ListBidsByOwner(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list bid requests",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	c.JSON(http.StatusOK, bidsToDTOs(bids))
}
