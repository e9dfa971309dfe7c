package model

import "time"

// Job is a posted work item. BuyerEmail identifies the owning user for
// authorization checks and never changes after creation.
type Job struct {
	JobID       string    `db:"job_id"`
	Title       string    `db:"title"`
	Category    string    `db:"category"`
	Deadline    time.Time `db:"deadline"`
	Description string    `db:"description"`
	MinPrice    float64   `db:"min_price"`
	MaxPrice    float64   `db:"max_price"`
	BuyerEmail  string    `db:"buyer_email"`
	BuyerName   string    `db:"buyer_name"`
	BuyerPhoto  string    `db:"buyer_photo"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Bid is a proposal against a job. JobID is an advisory reference; the
// job's owner email, title, and category are denormalized onto the bid
// so owner-side listings do not need a join.
type Bid struct {
	BidID      string    `db:"bid_id"`
	JobID      string    `db:"job_id"`
	Email      string    `db:"email"`
	Price      float64   `db:"price"`
	Comment    string    `db:"comment"`
	Deadline   time.Time `db:"deadline"`
	Status     string    `db:"status"`
	JobTitle   string    `db:"job_title"`
	Category   string    `db:"category"`
	BuyerEmail string    `db:"buyer_email"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
