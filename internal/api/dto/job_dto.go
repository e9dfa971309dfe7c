package dto

// BuyerDTO identifies the user who posted a job.
type BuyerDTO struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type CreateJobRequest struct {
	Title       string   `json:"job_title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Deadline    string   `json:"deadline" binding:"required"`
	Description string   `json:"description"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer" binding:"required"`
}

// UpdateJobRequest carries the replacement field values for PUT /job/:id.
// The same shape as creation because the route upserts a full document
// when the id has no match.
type UpdateJobRequest struct {
	Title       string   `json:"job_title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Deadline    string   `json:"deadline" binding:"required"`
	Description string   `json:"description"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer" binding:"required"`
}

type SearchJobsRequest struct {
	Page   int    `form:"page"`
	Size   int    `form:"size"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	Search string `form:"search"`
}

type CountJobsRequest struct {
	Filter string `form:"filter"`
	Search string `form:"search"`
}

type JobDTO struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"job_title"`
	Category    string   `json:"category"`
	Deadline    string   `json:"deadline"`
	Description string   `json:"description"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type CountJobsResponse struct {
	Count int `json:"count"`
}
