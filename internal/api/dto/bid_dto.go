package dto

type CreateBidRequest struct {
	JobID    string  `json:"job_id" binding:"required,uuid"`
	Email    string  `json:"email" binding:"required,email"`
	Price    float64 `json:"price" binding:"required"`
	Comment  string  `json:"comment"`
	Deadline string  `json:"deadline"`
}

type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BidDTO struct {
	BidID      string  `json:"bid_id"`
	JobID      string  `json:"job_id"`
	Email      string  `json:"email"`
	Price      float64 `json:"price"`
	Comment    string  `json:"comment"`
	Deadline   string  `json:"deadline"`
	Status     string  `json:"status"`
	JobTitle   string  `json:"job_title"`
	Category   string  `json:"category"`
	BuyerEmail string  `json:"buyer_email"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
