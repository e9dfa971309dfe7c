package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/hirenest/hirenest-be/internal/api/auth"
	"github.com/hirenest/hirenest-be/internal/api/model"
	"github.com/hirenest/hirenest-be/internal/api/storage"
	"github.com/hirenest/hirenest-be/shared/postgresql"
	"github.com/hirenest/hirenest-be/shared/rabbitmq"
)

// IdentityKey is the gin context key under which the access guard
// stores the verified email.
const IdentityKey = "identity_email"

// JobStore is the job persistence surface the handlers depend on.
type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	UpsertJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	ListJobsByOwner(ctx context.Context, email string) ([]model.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
	SearchJobs(ctx context.Context, filter storage.JobSearchFilter) ([]model.Job, error)
	CountJobs(ctx context.Context, search, category string) (int, error)
}

// BidStore is the bid persistence surface the handlers depend on.
type BidStore interface {
	CreateBid(ctx context.Context, bid *model.Bid) error
	HasBid(ctx context.Context, email, jobID string) (bool, error)
	GetBidByID(ctx context.Context, bidID string) (*model.Bid, error)
	ListBidsByBidder(ctx context.Context, email string) ([]model.Bid, error)
	ListBidsByOwner(ctx context.Context, email string) ([]model.Bid, error)
	UpdateBidStatus(ctx context.Context, bidID, from, to string) error
}

// EventPublisher publishes bid lifecycle events to the message broker.
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds everything the router needs to construct handlers
type Dependencies struct {
	Logger       *slog.Logger
	DBClient     *postgresql.Client
	RabbitClient *rabbitmq.Client
	Tokens       *auth.TokenService
	Cookies      auth.CookiePolicy
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger *slog.Logger
	jobs   JobStore
}

func NewJobHandler(logger *slog.Logger, jobs JobStore) *JobHandler {
	return &JobHandler{
		logger: logger,
		jobs:   jobs,
	}
}

// BidHandler handles bid-related HTTP requests
type BidHandler struct {
	logger *slog.Logger
	bids   BidStore
	jobs   JobStore
	events EventPublisher
}

func NewBidHandler(logger *slog.Logger, bids BidStore, jobs JobStore, events EventPublisher) *BidHandler {
	return &BidHandler{
		logger: logger,
		bids:   bids,
		jobs:   jobs,
		events: events,
	}
}

// AuthHandler issues and clears session tokens
type AuthHandler struct {
	logger  *slog.Logger
	tokens  *auth.TokenService
	cookies auth.CookiePolicy
}

func NewAuthHandler(logger *slog.Logger, tokens *auth.TokenService, cookies auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		tokens:  tokens,
		cookies: cookies,
	}
}

// deadlineLayouts are the accepted formats for job and bid deadlines.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDeadline(value string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
