package dto

type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AckResponse struct {
	Success bool `json:"success"`
}
